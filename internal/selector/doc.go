// Package selector asks the user to choose among a fetched project's
// sub-projects, or to type the path of the project to use when it declares none.
package selector
