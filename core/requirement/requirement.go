package requirement

import "strings"

// AuthModuleName identifies the authentication module by name.
const AuthModuleName = "auth"

// Requirement is the root of a requirement document. It is parsed once
// per run and never mutated afterwards.
type Requirement struct {
	App     App      `json:"app" yaml:"app"`
	Modules []Module `json:"modules" yaml:"modules"`
}

// App describes the generated application.
type App struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Author      string   `json:"author" yaml:"author"`
	Branding    Branding `json:"branding" yaml:"branding"`
	APIEndpoint string   `json:"apiEndpoint" yaml:"apiEndpoint"`
}

// Branding holds brand colors (hex) and assets.
type Branding struct {
	BrandName      string `json:"brandName" yaml:"brandName"`
	PrimaryColor   string `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor string `json:"secondaryColor" yaml:"secondaryColor"`
	Logo           string `json:"logo" yaml:"logo"`
}

// Module groups pages under a unique name.
type Module struct {
	Name  string `json:"name" yaml:"name"`
	Pages Pages  `json:"pages" yaml:"pages"`

	// SharedComponents marks the module whose CRUD generation also installs
	// the shared table components. At most one module carries it.
	SharedComponents bool `json:"sharedComponents,omitempty" yaml:"sharedComponents,omitempty"`
}

// IsAuth reports whether this is the authentication module.
func (m Module) IsAuth() bool {
	return m.Name == AuthModuleName
}

// FieldType is the primitive type of a form field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePassword FieldType = "password"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDate     FieldType = "date"
	FieldTypeHidden   FieldType = "hidden"
	FieldTypeNumber   FieldType = "number"
)

func isValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypePassword, FieldTypeTextarea,
		FieldTypeDate, FieldTypeHidden, FieldTypeNumber:
		return true
	default:
		return false
	}
}

// Field is a form field of a drawer or auth page.
type Field struct {
	Name         string     `json:"name" yaml:"name"`
	Type         FieldType  `json:"type" yaml:"type"`
	Required     bool       `json:"required,omitempty" yaml:"required,omitempty"`
	DefaultValue any        `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Validation   Validation `json:"validation" yaml:"validation"`
	Options      []string   `json:"options,omitempty" yaml:"options,omitempty"`
}

// Hidden is derived from the field type; it cannot be set on its own.
func (f Field) Hidden() bool {
	return f.Type == FieldTypeHidden
}

// Validation describes client-side validation for a field.
type Validation struct {
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	ZodString string `json:"zodString" yaml:"zodString"`
}

// Column is a listing table column. Field may be a dotted path.
type Column struct {
	Field string `json:"field" yaml:"field"`
	Label string `json:"label" yaml:"label"`
}

// DrawerSize is the width of a form drawer.
type DrawerSize string

const (
	DrawerSmall  DrawerSize = "small"
	DrawerMedium DrawerSize = "medium"
	DrawerLarge  DrawerSize = "large"
)

// Drawer is a create or update form attached to a listing page.
type Drawer struct {
	Title       string     `json:"title" yaml:"title"`
	Size        DrawerSize `json:"size" yaml:"size"`
	GraphqlHook string     `json:"graphqlHook" yaml:"graphqlHook"`
	Fields      []Field    `json:"fields" yaml:"fields"`
}

// APIType is the operation an API binding performs.
type APIType string

const (
	APIList        APIType = "list"
	APICreate      APIType = "create"
	APIUpdate      APIType = "update"
	APIDelete      APIType = "delete"
	APIGetByID     APIType = "getById"
	APILogin       APIType = "login"
	APICurrentUser APIType = "currentUser"
)

// ListingAPITypes are the operations a listing page resolves, in context order.
var ListingAPITypes = []APIType{APIList, APICreate, APIUpdate, APIDelete, APIGetByID}

// ResponseType describes the shape of an API response.
type ResponseType struct {
	Type       string                          `json:"type" yaml:"type"`
	Properties map[string]ResponseTypeProperty `json:"properties" yaml:"properties"`
}

// ResponseTypeProperty is one property of a ResponseType.
type ResponseTypeProperty struct {
	Type string `json:"type" yaml:"type"`
}

// API binds a page operation to an externally generated GraphQL hook.
type API struct {
	Type         APIType       `json:"type,omitempty" yaml:"type,omitempty"`
	GraphqlHook  string        `json:"graphqlHook" yaml:"graphqlHook"`
	QueryString  string        `json:"queryString" yaml:"queryString"`
	ResponseType *ResponseType `json:"responseType,omitempty" yaml:"responseType,omitempty"`
}

// Name is the generated operation constant: upper-cased type + module name.
// Two bindings with equal type in one module produce the same name.
func (a API) Name(moduleName string) string {
	return strings.ToUpper(string(a.Type) + moduleName)
}

// FindAPI returns the first binding of the given type.
func FindAPI(apis []API, t APIType) (API, bool) {
	for _, a := range apis {
		if a.Type == t {
			return a, true
		}
	}
	return API{}, false
}

// Module returns the module with the given name.
func (r Requirement) Module(name string) (Module, bool) {
	for _, m := range r.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// AuthModule returns the authentication module, if any.
func (r Requirement) AuthModule() (Module, bool) {
	return r.Module(AuthModuleName)
}

// FeatureModules returns every non-auth module in document order.
func (r Requirement) FeatureModules() []Module {
	var mods []Module
	for _, m := range r.Modules {
		if !m.IsAuth() {
			mods = append(mods, m)
		}
	}
	return mods
}

// SharedModule returns the module flagged with SharedComponents.
func (r Requirement) SharedModule() (Module, bool) {
	for _, m := range r.Modules {
		if m.SharedComponents {
			return m, true
		}
	}
	return Module{}, false
}
