package audit

type EntryResponse struct {
	ID               string  `json:"id"`
	Acao             string  `json:"acao"`
	UsuarioAfetadoID *string `json:"usuario_afetado_id,omitempty"`
	UsuarioAfetado   string  `json:"usuario_afetado"`
	ExecutadoPor     string  `json:"executado_por"`
	Data             string  `json:"data"`
}
