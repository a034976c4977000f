// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated input, services apply country rules and call repositories.
package service
