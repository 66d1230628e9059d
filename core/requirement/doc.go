/*
Package requirement defines the declarative application requirement document.

# Document

A minimal requirement in JSON:

	{
	  "app": {
	    "name": "gym-admin",
	    "apiEndpoint": "https://api.example.com/graphql",
	    "branding": { "primaryColor": "#1e3a8a", "logo": "/logo.svg" }
	  },
	  "modules": [
	    {
	      "name": "auth",
	      "pages": [
	        {
	          "type": "EmailPassword",
	          "name": "LoginPage",
	          "route": "/login",
	          "isPrivate": false,
	          "api": [
	            { "type": "login", "graphqlHook": "useLoginMutation", "queryString": "mutation Login { ... }" }
	          ]
	        }
	      ]
	    },
	    {
	      "name": "Trainer",
	      "pages": [
	        {
	          "type": "Listing",
	          "name": "TrainerList",
	          "route": "/trainers",
	          "isPrivate": true,
	          "columns": [{ "field": "name", "label": "Name" }],
	          "actions": ["create", "edit", "delete"],
	          "drawerCreate": { "title": "Add", "size": "medium", "graphqlHook": "", "fields": [] },
	          "drawerUpdate": { "title": "Edit", "size": "medium", "graphqlHook": "", "fields": [] },
	          "api": [{ "type": "list", "graphqlHook": "useTrainersQuery", "queryString": "query Trainers { ... }" }]
	        }
	      ]
	    }
	  ]
	}

The same document may be written in YAML with identical keys.

# Pages

The "type" key selects the page variant: "Listing" and "Detail" decode to
ListingPage and DetailPage, every other value decodes to an AuthPage whose
Flow is that value. Auth pages must live in the module named "auth".

# Shared components

The module with sharedComponents set installs the shared table components
during CRUD generation. When no module sets it, parsing sets it on the first
non-auth module.
*/
package requirement
