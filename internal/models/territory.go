package models

import "time"

// DefaultTerritoryRadius is used when a territory is created without a radius
const DefaultTerritoryRadius = 200.0

// Territory is a circular geofence owned by a user
type Territory struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"-"`
	Owner     string    `json:"owner"` // owner's username
	CenterLat float64   `json:"center_lat"`
	CenterLon float64   `json:"center_lon"`
	Radius    float64   `json:"radius"` // meters
	CreatedAt time.Time `json:"created_at"`
}

// TerritoryFilter represents filter parameters for listing territories.
// With both Lat and Lon set only territories containing that point are returned.
type TerritoryFilter struct {
	Lat *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`
	Lon *float64 `form:"lon" binding:"omitempty,min=-180,max=180"`
}
