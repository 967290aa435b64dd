package server_response

type ServerResponder interface {
	Respond(ctx interface{}, code int, message string, payload interface{}, errs []error, response_code *uint, request_id *string)
	Attachment(ctx interface{}, code int, contentType string, fileName string, data []byte)
}

var Responder ServerResponder = ginResponder{}
