package user

type CreateUserRequest struct {
	Nome         string `json:"nome" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Senha        string `json:"senha" binding:"required"`
	Departamento string `json:"departamento" binding:"required"`
	Cargo        string `json:"cargo" binding:"required"`
	Unidade      string `json:"unidade"`
	NivelAcesso  string `json:"nivel_acesso" binding:"required"`
	// Matricula vazia é gerada automaticamente (PD-000001, PD-000002, ...).
	Matricula string `json:"matricula"`
}

type UpdateUserRequest struct {
	Nome         string `json:"nome" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Departamento string `json:"departamento" binding:"required"`
	Cargo        string `json:"cargo" binding:"required"`
	Unidade      string `json:"unidade"`
	NivelAcesso  string `json:"nivel_acesso" binding:"required"`
}

type ResetPasswordRequest struct {
	NovaSenha string `json:"nova_senha" binding:"required"`
}

type UserResponse struct {
	ID           string `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Departamento string `json:"departamento"`
	Cargo        string `json:"cargo"`
	Unidade      string `json:"unidade,omitempty"`
	NivelAcesso  string `json:"nivel_acesso"`
	Matricula    string `json:"matricula"`
	Status       string `json:"status"`
	DataCadastro string `json:"data_cadastro"`
}
