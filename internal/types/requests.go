package types

// SignupRequest represents the request body for POST /signup
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the optional profile fields a user may change.
type UpdateProfileRequest struct {
	Username          *string `json:"username,omitempty"`
	AboutMe           *string `json:"about_me,omitempty"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

// RecipeRequest represents the request body for creating or updating a recipe
type RecipeRequest struct {
	Name             string `json:"name"`
	Cuisine          string `json:"cuisine"`
	Ingredients      string `json:"ingredients"`
	Instructions     string `json:"instructions"`
	RecipePictureURL string `json:"recipe_picture_url"`
	TotalPrepTime    int    `json:"total_prep_time"`
	DifficultyLevel  string `json:"difficulty_level"`
	Notes            string `json:"notes"`
}

// ReviewRequest is the body of review create/edit calls.
type ReviewRequest struct {
	Content string `json:"content"`
}

// RecipeFilter selects recipes by an allow-listed column.
type RecipeFilter struct {
	Field string `form:"field"`
	Value string `form:"value"`
	Sort  string `form:"sort"`
	Order string `form:"order"`
}

// PictureUploadRequest asks for a presigned upload URL.
type PictureUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}
