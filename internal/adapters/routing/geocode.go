package routing

import (
	"sort"
	"strings"

	"hos-planner-service/internal/domain"
)

// Coordinates for major US cities, consulted before any external geocode
// call. Keeps common trips working offline and deterministic.
var knownCities = map[string]domain.Coordinates{
	"new york":         {Lat: 40.7128, Lon: -74.0060},
	"los angeles":      {Lat: 34.0522, Lon: -118.2437},
	"chicago":          {Lat: 41.8781, Lon: -87.6298},
	"houston":          {Lat: 29.7604, Lon: -95.3698},
	"atlanta":          {Lat: 33.7490, Lon: -84.3880},
	"dallas":           {Lat: 32.7767, Lon: -96.7970},
	"philadelphia":     {Lat: 39.9526, Lon: -75.1652},
	"phoenix":          {Lat: 33.4484, Lon: -112.0740},
	"san antonio":      {Lat: 29.4241, Lon: -98.4936},
	"san diego":        {Lat: 32.7157, Lon: -117.1611},
	"detroit":          {Lat: 42.3314, Lon: -83.0458},
	"san jose":         {Lat: 37.3382, Lon: -121.8863},
	"indianapolis":     {Lat: 39.7684, Lon: -86.1581},
	"jacksonville":     {Lat: 30.3322, Lon: -81.6557},
	"san francisco":    {Lat: 37.7749, Lon: -122.4194},
	"columbus":         {Lat: 39.9612, Lon: -82.9988},
	"charlotte":        {Lat: 35.2271, Lon: -80.8431},
	"fort worth":       {Lat: 32.7555, Lon: -97.3308},
	"denver":           {Lat: 39.7392, Lon: -104.9903},
	"el paso":          {Lat: 31.7619, Lon: -106.4850},
	"memphis":          {Lat: 35.1495, Lon: -90.0490},
	"seattle":          {Lat: 47.6062, Lon: -122.3321},
	"boston":           {Lat: 42.3601, Lon: -71.0589},
	"nashville":        {Lat: 36.1627, Lon: -86.7816},
	"baltimore":        {Lat: 39.2904, Lon: -76.6122},
	"oklahoma city":    {Lat: 35.4676, Lon: -97.5164},
	"portland":         {Lat: 45.5152, Lon: -122.6784},
	"las vegas":        {Lat: 36.1699, Lon: -115.1398},
	"milwaukee":        {Lat: 43.0389, Lon: -87.9065},
	"albuquerque":      {Lat: 35.0844, Lon: -106.6504},
	"tucson":           {Lat: 32.2226, Lon: -110.9747},
	"fresno":           {Lat: 36.7378, Lon: -119.7871},
	"sacramento":       {Lat: 38.5816, Lon: -121.4944},
	"kansas city":      {Lat: 39.0997, Lon: -94.5786},
	"mesa":             {Lat: 33.4152, Lon: -111.8315},
	"virginia beach":   {Lat: 36.8529, Lon: -75.9780},
	"omaha":            {Lat: 41.2565, Lon: -95.9345},
	"colorado springs": {Lat: 38.8339, Lon: -104.8214},
	"raleigh":          {Lat: 35.7796, Lon: -78.6382},
	"miami":            {Lat: 25.7617, Lon: -80.1918},
	"oakland":          {Lat: 37.8044, Lon: -122.2712},
	"minneapolis":      {Lat: 44.9778, Lon: -93.2650},
	"tulsa":            {Lat: 36.1540, Lon: -95.9928},
	"cleveland":        {Lat: 41.4993, Lon: -81.6944},
	"wichita":          {Lat: 37.6872, Lon: -97.3301},
	"arlington":        {Lat: 32.7357, Lon: -97.1081},
}

// lookupKnownCity matches a location label against the builtin city table
// by case-insensitive substring. Keys are scanned in sorted order so ties
// resolve deterministically.
func lookupKnownCity(location string) (domain.Coordinates, bool) {
	lower := strings.ToLower(location)

	keys := make([]string, 0, len(knownCities))
	for k := range knownCities {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.Contains(lower, k) {
			return knownCities[k], true
		}
	}
	return domain.Coordinates{}, false
}
