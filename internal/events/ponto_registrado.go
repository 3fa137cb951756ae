package events

const PontoRegistradoTopic = "ponto.registrado"

// PontoRegistradoEvent é publicado após cada batida de ponto persistida,
// via outbox transacional. Consumidores mantêm agregados derivados
// (frequência diária) sem participar do request de registro.
type PontoRegistradoEvent struct {
	RegistroID string `json:"registro_id"`
	UsuarioID  string `json:"usuario_id"`
	Tipo       string `json:"tipo"`
	Horario    string `json:"horario"`
	Endereco   string `json:"endereco"`
}
