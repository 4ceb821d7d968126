// Package token provides source positions for parsed documents.
package token
