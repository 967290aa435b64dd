package useragent

type UserAgent struct {
	Bot       bool
	OS        string
	OSVersion string
	Device    string
	Name      string
}
