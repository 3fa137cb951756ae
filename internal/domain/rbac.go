package domain

// EnforceRequest descreve uma checagem de permissão: o nível de acesso do
// usuário autenticado contra um recurso/ação da API.
type EnforceRequest struct {
	NivelAcesso string `json:"nivel_acesso" binding:"required"`
	Resource    string `json:"resource" binding:"required"`
	Action      string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
