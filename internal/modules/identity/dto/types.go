package dto

type CredentialsInput struct {
	Email    string
	Password string
}

type UserOutput struct {
	ID    string
	Email string
}
