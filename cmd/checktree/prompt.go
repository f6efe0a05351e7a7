package main

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/checktree/pkg/checklist"
)

// isTerminal checks if stdin is connected to a terminal
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// isOutputTerminal checks if stdout is connected to a terminal
var isOutputTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// outputWidth returns the stdout terminal width, or 80 when unknown.
func outputWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// policyLabels describes each policy in the picker.
var policyLabels = map[checklist.Policy]string{
	checklist.PolicyIndependent: "Independent: a checked parent selects its branch, children keep their own marks",
	checklist.PolicyCascade:     "Cascade: checking a parent overwrites every child below it",
}

func policyOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for _, p := range checklist.Policies() {
		label, ok := policyLabels[p]
		if !ok {
			label = p.String()
		}
		opts = append(opts, huh.NewOption(label, p.String()))
	}
	return opts
}

// askPolicy lets the user pick a propagation policy before the checklist
// starts. It is swapped out in tests.
var askPolicy = func() (checklist.Policy, error) {
	choice := checklist.PolicyIndependent.String()
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How should checking a parent behave?").
				Options(policyOptions()...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return checklist.PolicyIndependent, err
	}
	return checklist.ParsePolicy(choice)
}
