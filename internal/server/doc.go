// Package server exposes the mapping engine over HTTP for inspection and
// ad-hoc conversion.
//
// Routes:
//
//	GET  /objects                       list registered objects
//	GET  /objects/{name}/schema         derived schema (?custom=, ?tenant=, ?format=jsonschema)
//	POST /objects/{name}/convert        raw API JSON -> record JSON
//	POST /objects/{name}/payload        record JSON -> update payload (?null=a,b.c)
//
// Unknown objects answer 404, conversion failures 422 and malformed
// requests 400. Error bodies are JSON objects with code, status and
// message.
package server
