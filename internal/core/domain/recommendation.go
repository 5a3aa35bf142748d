package domain

// Recommendation is a user's 0–10 satisfaction rating. One per user;
// submitting again overwrites the previous rating.
type Recommendation struct {
	ID            int64 `json:"id"`
	UtilisateurID int64 `json:"utilisateurId"`
	Rating        int   `json:"rating"`
}

// RecommendationStats is the aggregate view shown on the home page.
type RecommendationStats struct {
	AverageRating        float64 `json:"averageRating"`
	TotalRecommendations int     `json:"totalRecommendations"`
}
