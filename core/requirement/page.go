package requirement

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Page is one of ListingPage, DetailPage or AuthPage.
// The set is closed; switch on the concrete type.
type Page interface {
	// Meta returns the attributes common to every page.
	Meta() PageMeta

	// Kind returns the discriminator value the page was declared with.
	Kind() string

	isPage()
}

// Discriminator values of collection pages. Any other value is an auth flow.
const (
	KindListing = "Listing"
	KindDetail  = "Detail"
)

// PageMeta holds the attributes shared by all pages.
type PageMeta struct {
	Name      string `json:"name" yaml:"name"`
	Route     string `json:"route" yaml:"route"`
	IsPrivate bool   `json:"isPrivate" yaml:"isPrivate"`
}

// Meta returns m itself; it is promoted to every page type.
func (m PageMeta) Meta() PageMeta { return m }

// Action is a mutation a listing page exposes.
type Action string

const (
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Collection is the shape shared by listing and detail pages.
type Collection struct {
	Columns        []Column `json:"columns" yaml:"columns"`
	Actions        []Action `json:"actions" yaml:"actions"`
	DrawerCreate   Drawer   `json:"drawerCreate" yaml:"drawerCreate"`
	DrawerUpdate   Drawer   `json:"drawerUpdate" yaml:"drawerUpdate"`
	API            []API    `json:"api,omitempty" yaml:"api,omitempty"`
	GraphqlHook    string   `json:"graphqlHook,omitempty" yaml:"graphqlHook,omitempty"`
	ReturnTypeName string   `json:"returnTypeName,omitempty" yaml:"returnTypeName,omitempty"`
}

// HasAction reports whether the page exposes a.
func (c Collection) HasAction(a Action) bool {
	for _, x := range c.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// ListingPage is a table of records with optional create/edit/delete drawers.
type ListingPage struct {
	PageMeta   `yaml:",inline"`
	Collection `yaml:",inline"`
}

// Kind returns KindListing.
func (ListingPage) Kind() string { return KindListing }
func (ListingPage) isPage()      {}

// DetailPage shows a single record.
type DetailPage struct {
	PageMeta   `yaml:",inline"`
	Collection `yaml:",inline"`
}

// Kind returns KindDetail.
func (DetailPage) Kind() string { return KindDetail }
func (DetailPage) isPage()      {}

// AuthFlow selects the credential flow of an auth page.
type AuthFlow string

const (
	FlowEmailPassword  AuthFlow = "EmailPassword"
	FlowPhone          AuthFlow = "Phone"
	FlowVerifyOtp      AuthFlow = "VerifyOtp"
	FlowForgotPassword AuthFlow = "ForgotPassword"
	FlowResetPassword  AuthFlow = "ResetPassword"
)

// AuthPage is a login or account-recovery page.
type AuthPage struct {
	PageMeta `yaml:",inline"`
	Flow     AuthFlow `json:"type" yaml:"type"`
	API      []API    `json:"api" yaml:"api"`
	Fields   []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Kind returns the flow name.
func (p AuthPage) Kind() string { return string(p.Flow) }
func (AuthPage) isPage()        {}

// Pages is an ordered list of pages decoded by their "type" discriminator.
type Pages []Page

type pageHeader struct {
	Type string `json:"type" yaml:"type"`
}

// UnmarshalJSON decodes each element into its concrete page type.
func (p *Pages) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	pages := make(Pages, 0, len(raws))
	for i, raw := range raws {
		var h pageHeader
		if err := json.Unmarshal(raw, &h); err != nil {
			return fmt.Errorf("pages[%d]: %w", i, err)
		}
		page, err := decodePage(h.Type, func(v any) error { return json.Unmarshal(raw, v) })
		if err != nil {
			return fmt.Errorf("pages[%d]: %w", i, err)
		}
		pages = append(pages, page)
	}

	*p = pages
	return nil
}

// UnmarshalYAML decodes each element into its concrete page type.
func (p *Pages) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: pages must be a list", node.Line)
	}

	pages := make(Pages, 0, len(node.Content))
	for i, child := range node.Content {
		var h pageHeader
		if err := child.Decode(&h); err != nil {
			return fmt.Errorf("pages[%d]: %w", i, err)
		}
		page, err := decodePage(h.Type, child.Decode)
		if err != nil {
			return fmt.Errorf("pages[%d]: %w", i, err)
		}
		pages = append(pages, page)
	}

	*p = pages
	return nil
}

func decodePage(kind string, decode func(any) error) (Page, error) {
	switch kind {
	case "":
		return nil, errors.New("page type is required")
	case KindListing:
		var lp ListingPage
		if err := decode(&lp); err != nil {
			return nil, err
		}
		return lp, nil
	case KindDetail:
		var dp DetailPage
		if err := decode(&dp); err != nil {
			return nil, err
		}
		return dp, nil
	default:
		var ap AuthPage
		if err := decode(&ap); err != nil {
			return nil, err
		}
		return ap, nil
	}
}
