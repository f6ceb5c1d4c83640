package notificacao

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PrimeHabitacao/api-financiamento/internal/etapa"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

// Eventos de documento notificáveis.
const (
	EventoDocumentoAprovado  = "approved"
	EventoDocumentoRejeitado = "rejected"
)

// ComporMensagemEtapa gera a mensagem automática da etapa atual do
// processo, interpolando os dados capturados na transição. Valores
// opcionais ausentes são simplesmente omitidos da frase.
func ComporMensagemEtapa(p processo.Processo) string {
	nome := primeiroNome(p.NomeCliente)
	campo := func(rotulo string) string {
		v, _ := p.ValorCampo(rotulo)
		return v
	}

	switch p.Status {
	case etapa.AnaliseCredito:
		banco := campo("bank_approved")
		if banco == "" {
			banco = "banco parceiro"
		}
		valor := ""
		if v := campo("credit_value"); v != "" {
			valor = fmt.Sprintf(" no valor de R$ %s", moeda(v))
		}
		return fmt.Sprintf("Olá %s! 🎉\n\nTemos ótimas notícias! Seu crédito foi aprovado pelo %s%s.\n\nPróxima etapa: Avaliação do imóvel.\n\nQualquer dúvida, estamos à disposição!", nome, banco, valor)

	case etapa.Avaliacao:
		valor := ""
		if v := campo("valuation_value"); v != "" {
			valor = fmt.Sprintf(" com o valor de R$ %s", moeda(v))
		}
		return fmt.Sprintf("Olá %s! 📋\n\nA avaliação do imóvel foi concluída%s.\n\nPróxima etapa: Análise jurídica da documentação.\n\nEstamos avançando!", nome, valor)

	case etapa.AnaliseJuridica:
		tipo := campo("pendency_type")
		desc := campo("pendency_desc")
		switch {
		case tipo == "client" && desc != "":
			return fmt.Sprintf("Olá %s! ⚠️\n\nIdentificamos uma pendência na documentação:\n\n%s\n\nPor favor, providencie o quanto antes para darmos continuidade ao processo.\n\nEstamos à disposição para ajudar!", nome, desc)
		case tipo == "internal":
			return fmt.Sprintf("Olá %s! 📄\n\nSua documentação está em análise jurídica. Estamos trabalhando internamente para resolver algumas questões.\n\nEm breve retornaremos com atualizações!", nome)
		default:
			return fmt.Sprintf("Olá %s! ✅\n\nAnálise jurídica concluída com sucesso! Toda a documentação está aprovada.\n\nPróxima etapa: Emissão do ITBI.\n\nEstamos quase lá!", nome)
		}

	case etapa.EmissaoITBI:
		valor := ""
		if v := campo("itbi_value"); v != "" {
			valor = fmt.Sprintf(" no valor de R$ %s", moeda(v))
		}
		vencimento := ""
		if v := campo("itbi_due_date"); v != "" {
			vencimento = fmt.Sprintf(" com vencimento em %s", dataBR(v))
		}
		return fmt.Sprintf("Olá %s! 💰\n\nO ITBI foi emitido%s%s.\n\nApós o pagamento, seguiremos para a assinatura do contrato!\n\nEstamos na reta final!", nome, valor, vencimento)

	case etapa.AssinaturaContrato:
		agenda := "Em breve agendaremos a assinatura do contrato."
		if v := campo("signing_date"); v != "" {
			agenda = fmt.Sprintf("A assinatura do contrato está agendada para %s.", dataBR(v))
		}
		return fmt.Sprintf("Olá %s! 🎊\n\nParabéns! Chegamos à etapa final!\n\n%s\n\nSeu sonho está se tornando realidade!", nome, agenda)

	default:
		return fmt.Sprintf("Olá %s!\n\nSeu processo está em andamento. Em breve teremos novidades!\n\nQualquer dúvida, estamos à disposição.", nome)
	}
}

// ComporMensagemDocumento gera a mensagem de um evento do checklist.
// Na rejeição o motivo informado pela equipe entra literalmente.
func ComporMensagemDocumento(doc processo.Documento, evento string) string {
	switch evento {
	case EventoDocumentoAprovado:
		return fmt.Sprintf("O documento \"%s\" foi aprovado. ✅", doc.Nome)
	case EventoDocumentoRejeitado:
		return fmt.Sprintf("O documento \"%s\" foi recusado.\n\nMotivo: %s\n\nPor favor, envie novamente.", doc.Nome, doc.Feedback)
	default:
		return fmt.Sprintf("O documento \"%s\" foi atualizado.", doc.Nome)
	}
}

// AssuntoEtapa é o assunto de e-mail para a etapa atual do processo.
func AssuntoEtapa(p processo.Processo) string {
	return "Atualização do seu processo - " + etapa.Titulo(p.Status)
}

func primeiroNome(nome string) string {
	partes := strings.Fields(nome)
	if len(partes) == 0 {
		return nome
	}
	return partes[0]
}

// moeda formata o valor bruto capturado no formato pt-BR (1.234,56).
// Valores não numéricos voltam como vieram.
func moeda(bruto string) string {
	v, err := strconv.ParseFloat(strings.ReplaceAll(bruto, ",", "."), 64)
	if err != nil {
		return bruto
	}
	inteiro := int64(v)
	centavos := int64((v-float64(inteiro))*100 + 0.5)

	digitos := strconv.FormatInt(inteiro, 10)
	var b strings.Builder
	for i, d := range digitos {
		if i > 0 && (len(digitos)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	if centavos > 0 {
		return fmt.Sprintf("%s,%02d", b.String(), centavos)
	}
	return b.String()
}

// dataBR converte uma data ISO (2006-01-02) para dd/mm/aaaa.
func dataBR(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
