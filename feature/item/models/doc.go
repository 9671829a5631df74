// Package models defines the hydrated item view returned by the item feature.
package models
