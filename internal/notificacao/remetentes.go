package notificacao

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Remetentes HTTP: entregam e-mail e SMS por webhook do provedor
// (SendGrid/Twilio atrás de um gateway). Fire-and-forget do ponto de
// vista do fluxo principal; quem loga a falha é o dispatcher.

const remetenteNome = "Prime Habitação"
const remetenteEmail = "noreply@primehabitacao.com.br"

var clienteHTTP = &http.Client{Timeout: 10 * time.Second}

type EmailWebhook struct {
	URL string
}

func (e *EmailWebhook) EnviarEmail(para, assunto, html string) error {
	return postJSON(e.URL, map[string]string{
		"to":        para,
		"subject":   assunto,
		"html":      html,
		"fromEmail": remetenteEmail,
		"fromName":  remetenteNome,
	})
}

// EnviarBoasVindas envia o e-mail de boas-vindas com a senha temporária
// gerada no cadastro do cliente.
func (e *EmailWebhook) EnviarBoasVindas(nome, para, senha string) error {
	corpo := fmt.Sprintf(
		"Olá, %s!\n\nSua conta na %s foi criada. Acesse o painel com o e-mail %s e a senha temporária %s.\n\nRecomendamos trocar a senha no primeiro acesso.",
		nome, remetenteNome, para, senha)
	return postJSON(e.URL, map[string]string{
		"to":        para,
		"subject":   "Bem-vindo à " + remetenteNome,
		"html":      corpo,
		"fromEmail": remetenteEmail,
		"fromName":  remetenteNome,
	})
}

type SMSWebhook struct {
	URL string
}

func (s *SMSWebhook) EnviarSMS(para, texto string) error {
	return postJSON(s.URL, map[string]string{
		"to":   para,
		"body": texto,
	})
}

func postJSON(url string, payload map[string]string) error {
	if url == "" {
		return fmt.Errorf("webhook não configurado")
	}
	body, _ := json.Marshal(payload)
	resp, err := clienteHTTP.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}
