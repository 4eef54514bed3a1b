package view

import (
	"html/template"
)

// View is the set of page updates the controller is allowed to make.
type View interface {
	Render(region Region, markup template.HTML)
	SetOptions(sel Select, opts []Option)
	ActivateTab(tab Tab)
	ShowModal(modal Modal)
	CloseModal(modal Modal)
	ResetForm(modal Modal)
	Alert(alert Alert)
}

// Confirm asks the user to approve a destructive action.
type Confirm func(message string) bool

type Option struct {
	Value string
	Label string
}

type AlertKind uint8

const (
	AlertSuccess AlertKind = iota + 1
	AlertError
)

type Alert struct {
	Kind    AlertKind
	Message string
}

func Success(message string) Alert {
	return Alert{Kind: AlertSuccess, Message: message}
}

func Failure(message string) Alert {
	return Alert{Kind: AlertError, Message: message}
}

func (a Alert) String() string {
	if a.Kind == AlertSuccess {
		return "✓ " + a.Message
	}
	return "✗ " + a.Message
}
