package etapa

// Tipos de campo capturados na transição de etapa. O valor é sempre
// armazenado como string; consumidores reinterpretam quando preciso.
const (
	TipoTexto      = "text"
	TipoTextoLongo = "textarea"
	TipoNumero     = "number"
	TipoData       = "date"
	TipoURL        = "url"
	TipoSelecao    = "select"
)

// Campo descreve um dado capturado da equipe ao mover o processo para a
// etapa. Um campo condicional só se aplica quando outro campo da mesma
// submissão tem o valor esperado.
type Campo struct {
	Nome        string
	Rotulo      string
	Tipo        string
	Opcoes      []string
	Obrigatorio bool

	CondicionalCampo string
	CondicionalValor string
}

// Aplicavel informa se o campo participa da submissão dada.
func (c Campo) Aplicavel(submissao map[string]string) bool {
	if c.CondicionalCampo == "" {
		return true
	}
	return submissao[c.CondicionalCampo] == c.CondicionalValor
}
