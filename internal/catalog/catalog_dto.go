package catalog

type OptionResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

// OptionsResponse alimenta os selects do formulário de cadastro de usuário.
type OptionsResponse struct {
	Departamentos []OptionResponse `json:"departamentos"`
	Cargos        []OptionResponse `json:"cargos"`
}
