package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sevenboard/board-api/internal/domain"
)

// The confirmation message is styled as a boarding-pass ticket; the
// completion and reopening notices are short status cards.

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 40px auto;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background: white; border-radius: 16px; overflow: hidden; box-shadow: 0 4px 10px rgba(0,0,0,0.05);">
      <tr>
        <td style="padding: 30px; border-right: 2px dashed #e0e0e0; width: 65%; vertical-align: top;">
          <span style="font-size: 22px; font-weight: 800; color: #0f172a;">SevenBoard</span>
          <span style="float: right; font-size: 12px; font-weight: 700; color: #3b82f6; text-transform: uppercase;">SOLICITAÇÃO</span>
          <table width="100%" style="margin-top: 20px;">
            <tr>
              <td style="padding-bottom: 20px; width: 50%;">
                <span style="font-size: 11px; text-transform: uppercase; color: #94a3b8;">PROTOCOLO</span><br>
                <span style="font-size: 24px; font-weight: 600; color: #3b82f6;">{{.Protocol}}</span>
              </td>
              <td style="padding-bottom: 20px; width: 50%;">
                <span style="font-size: 11px; text-transform: uppercase; color: #94a3b8;">DEPARTAMENTO</span><br>
                <span style="font-size: 16px; font-weight: 600; color: #1e293b;">{{.Department}}</span>
              </td>
            </tr>
            <tr>
              <td style="padding-bottom: 20px;">
                <span style="font-size: 11px; text-transform: uppercase; color: #94a3b8;">DATA DE ENTREGA</span><br>
                <span style="font-size: 16px; font-weight: 600; color: #1e293b;">{{.DueDate}}</span>
              </td>
              <td style="padding-bottom: 20px;">
                <span style="font-size: 11px; text-transform: uppercase; color: #94a3b8;">HORÁRIO</span><br>
                <span style="font-size: 16px; font-weight: 600; color: #1e293b;">{{.DueTime}}</span>
              </td>
            </tr>
            <tr>
              <td colspan="2">
                <span style="font-size: 11px; text-transform: uppercase; color: #94a3b8;">DESCRIÇÃO DA SOLICITAÇÃO</span><br>
                <span style="font-size: 14px; font-weight: 600; color: #1e293b;">{{.RequestType}}</span>
                <div style="font-size: 13px; color: #64748b; margin-top: 4px;">{{.Description}}</div>
              </td>
            </tr>
          </table>
        </td>
        <td style="padding: 30px; background-color: #f8fafc; width: 35%; vertical-align: middle; text-align: center;">
          <span style="font-size: 11px; text-transform: uppercase; color: #94a3b8;">STATUS</span><br>
          <span style="font-size: 18px; font-weight: 600; color: #3b82f6;">CONFIRMADO</span><br><br>
          <span style="font-size: 11px; text-transform: uppercase; color: #94a3b8;">DATA</span><br>
          <span style="font-size: 14px; font-weight: 600; color: #1e293b;">{{.Today}}</span>
          <div style="font-size: 10px; color: #94a3b8; margin-top: 15px; letter-spacing: 2px;">BOARDING PASS</div>
        </td>
      </tr>
    </table>
    <p style="text-align: center; color: #94a3b8; font-size: 12px; margin-top: 20px;">
      Este é um email eletrônico automático. Acompanhe o status no painel.
    </p>
  </div>
</body>
</html>`))

var completionTmpl = template.Must(template.New("completion").Parse(`
<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #10b981;">Solicitação Concluída!</h2>
  <p>Olá,</p>
  <p>Sua solicitação foi marcada como <strong>CONCLUÍDA</strong> em nosso sistema.</p>
  <div style="background-color: #f0fdf4; padding: 15px; border-radius: 8px; margin: 20px 0; border: 1px solid #bbf7d0;">
    <h3 style="margin-top: 0; color: #15803d;">Detalhes:</h3>
    <ul style="list-style: none; padding: 0;">
      <li style="margin-bottom: 8px;"><strong>Protocolo:</strong> {{.Protocol}}</li>
      <li style="margin-bottom: 8px;"><strong>Tipo:</strong> {{.RequestType}}</li>
      <li style="margin-bottom: 8px;"><strong>Departamento:</strong> {{.Department}}</li>
    </ul>
  </div>
  <p style="color: #94a3b8; font-size: 12px;">Este é um email eletrônico automático.</p>
</div>`))

var reopenedTmpl = template.Must(template.New("reopened").Parse(`
<div style="font-family: Arial, sans-serif; color: #333;">
  <h2 style="color: #f59e0b;">Solicitação Reaberta</h2>
  <p>Olá,</p>
  <p>Sua solicitação retornou para a fila de atendimento e será retrabalhada.</p>
  <div style="background-color: #fffbeb; padding: 15px; border-radius: 8px; margin: 20px 0; border: 1px solid #fde68a;">
    <h3 style="margin-top: 0; color: #b45309;">Detalhes:</h3>
    <ul style="list-style: none; padding: 0;">
      <li style="margin-bottom: 8px;"><strong>Protocolo:</strong> {{.Protocol}}</li>
      <li style="margin-bottom: 8px;"><strong>Tipo:</strong> {{.RequestType}}</li>
      <li style="margin-bottom: 8px;"><strong>Departamento:</strong> {{.Department}}</li>
    </ul>
  </div>
  <p style="color: #94a3b8; font-size: 12px;">Este é um email eletrônico automático.</p>
</div>`))

type templateData struct {
	Protocol    string
	Department  string
	RequestType string
	Description string
	DueDate     string
	DueTime     string
	Today       string
}

func render(kind TemplateKind, sol *domain.Solicitation) (subject, body string, err error) {
	data := templateData{
		Protocol:    orFallback(sol.ProtocolCode, "PENDENTE"),
		Department:  sol.Department,
		RequestType: sol.RequestType,
		Description: sol.Description,
		DueDate:     sol.DueDate,
		DueTime:     orFallback(sol.DueTime, "Comercial"),
		Today:       time.Now().Format("02/01/2006"),
	}

	var tmpl *template.Template
	switch kind {
	case TemplateConfirmation:
		tmpl = confirmationTmpl
		subject = "Bilhete de Solicitação: " + data.Protocol
	case TemplateCompletion:
		tmpl = completionTmpl
		subject = "Solicitação Concluída: " + orFallback(sol.ProtocolCode, sol.RequestType)
	case TemplateReopened:
		tmpl = reopenedTmpl
		subject = "Solicitação Reaberta: " + orFallback(sol.ProtocolCode, sol.RequestType)
	default:
		return "", "", fmt.Errorf("unknown template kind %q", kind)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", "", err
	}
	return subject, b.String(), nil
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
