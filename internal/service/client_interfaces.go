package service

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ErrorReporter receives failures that have no caller left to return them to:
// walk requests, probes started in the background and rejected mutations.
type ErrorReporter interface {
	Report(err error)
}
