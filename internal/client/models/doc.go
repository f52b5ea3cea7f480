// Package models defines the payloads exchanged with the DONATello API.
package models
