package weather

// ForecastPayload is the narrative forecast document returned by the external
// service. The archive stores it verbatim as jsonb; decoding into this struct
// at fetch time is what validates the shape of what gets stored.
type ForecastPayload struct {
	Header                    string                     `json:"header"`
	TemperatureOverview       string                     `json:"temperature_overview"`
	GeneralTrend              string                     `json:"general_trend"`
	KeyPatterns               string                     `json:"key_patterns"`
	NotableChanges            string                     `json:"notable_changes"`
	ClothingRecommendations   string                     `json:"clothing_recommendations"`
	ActivitySuggestions       string                     `json:"activity_suggestions"`
	WeatherContext            string                     `json:"weather_context"`
	AdditionalTips            *string                    `json:"additional_tips"`
	LocalEvents               string                     `json:"local_events"`
	RestaurantRecommendations []RestaurantRecommendation `json:"restaurant_recommendations"`
}

type RestaurantRecommendation struct {
	Name               string `json:"name"`
	Location           string `json:"location"`
	WeatherSuitability string `json:"weather_suitability"`
}
