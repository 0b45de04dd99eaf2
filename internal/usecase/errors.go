package usecase


// DomainError: regra de negócio violada ou recurso inexistente. Nada foi
// mutado quando um desses volta para o caller.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}


func NewNotFound(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}


// TechnicalError: infraestrutura falhou (gravação do agregado, por exemplo).
// O estado em memória segue valendo como last-known-good.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}


func storageError(err error) *TechnicalError {
	return &TechnicalError{
		Code:    "STORAGE_ERROR",
		Message: "falha ao persistir a campanha: " + err.Error(),
	}
}
