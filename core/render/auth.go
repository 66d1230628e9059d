package render

import "github.com/artpar/reacthub/core/requirement"

// LoginUIComponents are the shadcn components the login form imports.
var LoginUIComponents = []string{"button", "input", "label"}

// ResolveFlow returns the flow an auth page is rendered with. EmailPassword
// is the only implemented flow; every other flow falls back to it.
func ResolveFlow(flow requirement.AuthFlow) (requirement.AuthFlow, bool) {
	switch flow {
	case requirement.FlowEmailPassword:
		return flow, false
	default:
		return requirement.FlowEmailPassword, true
	}
}

// Auth builds the login page files of an auth page.
func Auth(mod requirement.Module, page requirement.AuthPage) (Bundle, error) {
	flow, _ := ResolveFlow(page.Flow)

	bundle := Bundle{Module: mod.Name, Page: page.Name, Kind: page.Kind()}

	switch flow {
	case requirement.FlowEmailPassword:
		bundle.Files, bundle.Warnings = emailPassword(mod, page)
		bundle.UIComponents = append([]string(nil), LoginUIComponents...)
	}

	return bundle, nil
}

func emailPassword(mod requirement.Module, page requirement.AuthPage) ([]File, []UnresolvedBinding) {
	var warnings []UnresolvedBinding
	for _, t := range []requirement.APIType{requirement.APILogin, requirement.APICurrentUser} {
		if _, ok := requirement.FindAPI(page.API, t); !ok {
			warnings = append(warnings, UnresolvedBinding{Module: mod.Name, Page: page.Name, Operation: t})
		}
	}

	files := []File{
		{Template: TmplLoginForm, Path: "src/components/login-form.tsx"},
		{
			Template: TmplLoginIndex,
			Path:     "src/pages/login/index.tsx",
			Context: map[string]any{
				"loginHook":       hook(page.API, requirement.APILogin),
				"currentUserHook": hook(page.API, requirement.APICurrentUser),
			},
		},
		{
			Template: TmplLoginGraphql,
			Path:     "src/pages/login/graphql/index.ts",
			Context: map[string]any{
				"loginMutation":    query(page.API, requirement.APILogin),
				"currentUserQuery": query(page.API, requirement.APICurrentUser),
			},
		},
		{Template: TmplButton, Path: "src/components/ui/button.tsx"},
	}

	return files, warnings
}
