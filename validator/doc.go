// Package validator validates tagged structs with go-playground/validator
// and reports failures as ecode invalid argument errors. Field paths use the
// json tag names, e.g. "api.host".
package validator
