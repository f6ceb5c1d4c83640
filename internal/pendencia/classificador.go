// Package pendencia deriva, dos campos extras do processo, se ele está
// travado no cliente ou travado internamente. É só classificação de
// exibição; nada é gravado.
package pendencia

// Rótulos reconhecidos para o tipo de pendência. A base de dados traz
// as duas grafias (a chave em inglês gravada pela transição de etapa e
// a em português de campos preenchidos à mão); ambas são equivalentes.
var rotulosTipo = []string{"pendency_type", "Tipo de Pendência"}

// Classificacao é o resultado derivado para o quadro e as mensagens.
type Classificacao struct {
	TemPendencia bool `json:"temPendencia"`
	Cliente      bool `json:"cliente"`
	Interna      bool `json:"interna"`
}

// Classificar inspeciona os campos extras através da função de consulta
// fornecida pelo chamador (tipicamente ValorCampo do processo). Os
// valores são comparados de forma sensível a maiúsculas: client/cliente
// indicam pendência do cliente, internal/interna indicam pendência
// interna. A função é agnóstica à etapa atual.
func Classificar(valorCampo func(rotulo string) (string, bool)) Classificacao {
	for _, rotulo := range rotulosTipo {
		valor, ok := valorCampo(rotulo)
		if !ok {
			continue
		}
		switch valor {
		case "client", "cliente":
			return Classificacao{TemPendencia: true, Cliente: true}
		case "internal", "interna":
			return Classificacao{TemPendencia: true, Interna: true}
		}
	}
	return Classificacao{}
}
