package domain

import "strings"

// Departments lists the intake form's department choices.
var Departments = []string{
	"Educação",
	"Evangelismo/MG",
	"IntegraRH",
	"JA/Com/Mus/Univ/MAP",
	"MCA",
	"MDA",
	"Ministerial e Família",
	"MIPES/Esc. Sabatina/ASA",
	"Mordomia e Saúde",
	"Mulher/AFAM",
	"Nutrição",
	"Publicações/EP",
	"Secretaria",
	"Tesouraria",
	"Outros",
}

// RequestType is a catalog entry with its advisory lead time in days.
type RequestType struct {
	Label    string
	LeadDays int
}

// RequestTypes lists the catalog offered on the intake form. Lead
// times are advisory only and never enforced by the engine.
var RequestTypes = []RequestType{
	{Label: "Arte para Instagram/Whatsapp (5 dias)", LeadDays: 5},
	{Label: "Cobertura de Eventos (20 dias)", LeadDays: 20},
	{Label: "Assessoria de Imprensa/Matérias (20 dias)", LeadDays: 20},
	{Label: "Vídeo (30 dias)", LeadDays: 30},
	{Label: "Identidade visual completa para eventos (30 dias)", LeadDays: 30},
	{Label: "Transmissão de Live (30 dias)", LeadDays: 30},
	{Label: "Arquivos digitais como boletim informativo (30 dias)", LeadDays: 30},
	{Label: "Arquivos como pulseiras, camisetas (10 dias)", LeadDays: 10},
}

// ChannelOptions lists the distribution channel tags.
var ChannelOptions = []string{"Digital", "Impresso"}

// IsKnownDepartment reports catalog membership.
func IsKnownDepartment(dept string) bool {
	for _, d := range Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// IsKnownRequestType reports catalog membership ignoring surrounding
// whitespace.
func IsKnownRequestType(label string) bool {
	label = strings.TrimSpace(label)
	for _, rt := range RequestTypes {
		if rt.Label == label {
			return true
		}
	}
	return false
}
