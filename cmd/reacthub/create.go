package main

import (
	"context"
	"errors"

	"github.com/artpar/reacthub/bootstrap"
	"github.com/artpar/reacthub/core/generator"
	"github.com/artpar/reacthub/core/render"
	"github.com/artpar/reacthub/core/requirement"
	"github.com/spf13/cobra"
)

var createAppCmd = &cobra.Command{
	Use:     "create-app <project-name>",
	Aliases: []string{"ca"},
	Short:   "Create a Vite + React project with tooling and theme",
	Long: `Create a Vite React TypeScript project in <project-name>, install its
dependencies, configure git hooks, Tailwind and shadcn, and write the app
shell. Each stage is committed.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
		_, err := app.Generator.App(ctx, requirement.App{Name: args[0]})
		return err
	}),
}

var createRoutesCmd = &cobra.Command{
	Use:     "create-routes <route-names>",
	Aliases: []string{"cr"},
	Short:   "Create the router, layout and page stubs",
	Long: `Create the router, private layout, sidebar and a page stub for each route
in the comma separated list, for example "/users,/posts". Run it inside the
project directory.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
		routes := render.ParseRoutes(args[0])
		if len(routes) == 0 {
			return errors.New("route names are required")
		}
		return app.Generator.Routes(ctx, routes, "", "")
	}),
}

var createLoginCmd = &cobra.Command{
	Use:     "create-login [path]",
	Aliases: []string{"clogin"},
	Short:   "Create the login page from the auth module",
	Long: `Create the login page declared as LoginPage in the auth module of the
requirement document (default ` + DefaultRequirementFile + `).`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
		req, err := loadRequirement(args)
		if err != nil {
			return err
		}
		mod, page, ok := generator.LoginPage(req)
		if !ok {
			app.Logger.Warn().Msg("no " + generator.LoginPageName + " in the auth module, nothing to do")
			return nil
		}
		return app.Generator.Login(ctx, mod, page)
	}),
}

var createCrudCmd = &cobra.Command{
	Use:     "create-crud [path]",
	Aliases: []string{"crud"},
	Short:   "Create listing and detail pages for every feature module",
	Long: `Create the listing pages, detail pages and drawers of every non-auth
module in the requirement document (default ` + DefaultRequirementFile + `).`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, app *bootstrap.App, args []string) error {
		req, err := loadRequirement(args)
		if err != nil {
			return err
		}
		for _, mod := range req.FeatureModules() {
			if err := app.Generator.CRUD(ctx, mod); err != nil {
				return err
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(createAppCmd)
	rootCmd.AddCommand(createRoutesCmd)
	rootCmd.AddCommand(createLoginCmd)
	rootCmd.AddCommand(createCrudCmd)
}
