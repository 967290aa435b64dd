package interfaces

import "net/http"

// ApplicationContext carries one request through the controllers. Ctx is the
// transport context (a *gin.Context for the HTTP server).
type ApplicationContext[T any] struct {
	Ctx        any
	Body       *T
	Keys       map[string]any
	Header     http.Header
	RequestID  string
	UserAgent  string
	DeviceName string
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}
