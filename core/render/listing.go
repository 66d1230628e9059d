package render

import (
	"path"
	"strings"

	"github.com/artpar/reacthub/core/fields"
	"github.com/artpar/reacthub/core/naming"
	"github.com/artpar/reacthub/core/requirement"
)

// Column presentation hints.
const (
	HintRating   = "rating"
	HintRate     = "rate"
	HintName     = "name"
	HintDatetime = "datetime"
	HintText     = "text"
)

// SharedUIComponents are the shadcn components the shared table imports.
var SharedUIComponents = []string{"drawer", "select", "input", "textarea", "label"}

// Column is a listing column as the index template consumes it.
type Column struct {
	Field          string `json:"field" yaml:"field"`
	Label          string `json:"label" yaml:"label"`
	Hint           string `json:"hint" yaml:"hint"`
	Align          string `json:"align" yaml:"align"`
	DisplayInTable bool   `json:"displayInTable" yaml:"displayInTable"`
}

// ColumnHint picks the presentation hint of a column from the last segment
// of its field path. Rules are tried in order and the first match wins.
func ColumnHint(field string) string {
	name := field
	if i := strings.LastIndex(field, "."); i >= 0 {
		name = field[i+1:]
	}

	switch {
	case name == "averageRating":
		return HintRating
	case name == "rate":
		return HintRate
	case strings.Contains(strings.ToLower(name), "name"):
		return HintName
	case strings.Contains(name, "Date"), strings.Contains(name, "Time"):
		return HintDatetime
	default:
		return HintText
	}
}

// Columns converts requirement columns, preserving order.
func Columns(cols []requirement.Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		out = append(out, Column{
			Field:          c.Field,
			Label:          strings.ToUpper(c.Label),
			Hint:           ColumnHint(c.Field),
			Align:          "left",
			DisplayInTable: true,
		})
	}
	return out
}

// DetailLink returns whether a listing links to a detail page and the
// route name it links to. The name is nil when there is no link.
func DetailLink(base string, hasView bool) (bool, any) {
	if !hasView {
		return false, nil
	}
	return true, naming.CamelCase(base) + naming.DetailSuffix
}

// PagePath is the directory under src/pages that holds a collection page.
func PagePath(page requirement.Page) (string, error) {
	return naming.EntityRouteName(page.Meta().Route, page.Kind() == requirement.KindDetail)
}

// Binding is an API binding with its generated operation name.
type Binding struct {
	Name        string              `json:"name" yaml:"name"`
	Type        requirement.APIType `json:"type" yaml:"type"`
	GraphqlHook string              `json:"graphqlHook" yaml:"graphqlHook"`
	QueryString string              `json:"queryString" yaml:"queryString"`
}

func graphqlFile(mod requirement.Module, apis []requirement.API, pagePath string) File {
	named := make([]Binding, 0, len(apis))
	for _, a := range apis {
		named = append(named, Binding{
			Name:        a.Name(mod.Name),
			Type:        a.Type,
			GraphqlHook: a.GraphqlHook,
			QueryString: a.QueryString,
		})
	}
	return File{
		Template: TmplCrudGraphql,
		Path:     path.Join("src/pages", pagePath, "graphql/index.ts"),
		Context:  map[string]any{"apis": named},
	}
}

// Listing builds the graphql bindings, index page, drawers and types of a
// listing page.
func Listing(mod requirement.Module, page requirement.ListingPage) (Bundle, error) {
	base, err := naming.BaseSegment(page.Route)
	if err != nil {
		return Bundle{}, err
	}
	pagePath := naming.CamelCase(base)
	dir := path.Join("src/pages", pagePath)

	pluralName := naming.PluralDisplayName(base)
	singularName := naming.SingularDisplayName(pluralName)

	bundle := Bundle{Module: mod.Name, Page: page.Name, Kind: page.Kind()}

	hooks := make(map[requirement.APIType]any, len(requirement.ListingAPITypes))
	for _, t := range requirement.ListingAPITypes {
		hooks[t] = hook(page.API, t)
		if hooks[t] == nil {
			bundle.Warnings = append(bundle.Warnings, UnresolvedBinding{Module: mod.Name, Page: page.Name, Operation: t})
		}
	}

	// No page attribute grants a view action yet, so detail links stay off.
	hasView := false
	detailPage, detailRouteName := DetailLink(base, hasView)

	index := map[string]any{
		"componentName":     naming.UpperFirst(pluralName),
		"singularName":      singularName,
		"singularNameCamel": naming.CamelCase(singularName),
		"pluralName":        pluralName,
		"pluralNameCamel":   naming.CamelCase(pluralName),
		"title":             pluralName,
		"getHook":           hooks[requirement.APIList],
		"createHook":        hooks[requirement.APICreate],
		"updateHook":        hooks[requirement.APIUpdate],
		"deleteHook":        hooks[requirement.APIDelete],
		"getByIdHook":       hooks[requirement.APIGetByID],
		"columns":           Columns(page.Columns),
		"hasCreateAction":   page.HasAction(requirement.ActionCreate),
		"hasEditAction":     page.HasAction(requirement.ActionEdit),
		"hasDeleteAction":   page.HasAction(requirement.ActionDelete),
		"detailPage":        detailPage,
		"detailRouteName":   detailRouteName,
	}

	bundle.Files = []File{
		graphqlFile(mod, page.API, pagePath),
		{Template: TmplCrudIndex, Path: path.Join(dir, "index.tsx"), Context: index},
		{
			Template: TmplCrudDrawer,
			Path:     path.Join(dir, "CreateDrawer.tsx"),
			Context: map[string]any{
				"singularName": singularName,
				"fields":       fields.Prepare(page.DrawerCreate.Fields),
				"editMode":     false,
			},
		},
		{
			Template: TmplCrudDrawer,
			Path:     path.Join(dir, "EditDrawer.tsx"),
			Context: map[string]any{
				"singularName": singularName,
				"fields":       fields.Prepare(page.DrawerUpdate.Fields),
				"editMode":     true,
			},
		},
		{
			Template: TmplCrudTypes,
			Path:     path.Join(dir, "types.ts"),
			Context: map[string]any{
				"singularName": singularName,
				"fields":       fields.Prepare(fields.Merge(page.DrawerCreate.Fields, page.DrawerUpdate.Fields)),
			},
		},
	}

	return bundle, nil
}

// Detail builds the graphql bindings of a detail page.
func Detail(mod requirement.Module, page requirement.DetailPage) (Bundle, error) {
	pagePath, err := PagePath(page)
	if err != nil {
		return Bundle{}, err
	}

	return Bundle{
		Module: mod.Name,
		Page:   page.Name,
		Kind:   page.Kind(),
		Files:  []File{graphqlFile(mod, page.API, pagePath)},
	}, nil
}

// SharedComponents builds the table components shared by every listing.
func SharedComponents() Bundle {
	return Bundle{
		Page: "shared",
		Kind: "SharedComponents",
		Files: []File{
			{Template: TmplTable, Path: "src/components/ui/table.tsx"},
			{Template: TmplTableHeader, Path: "src/components/ui/table-header.tsx"},
			{Template: TmplPagination, Path: "src/components/ui/pagination.tsx"},
			{Template: TmplTableLoader, Path: "src/components/tableLoader.tsx"},
		},
		UIComponents: append([]string(nil), SharedUIComponents...),
	}
}
