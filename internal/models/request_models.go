package models

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Phone    string   `json:"phone"`
	Password string   `json:"password"`
	FullName string   `json:"full_name"`
	Role     UserRole `json:"role"`
	City     string   `json:"city"`
	State    string   `json:"state"`
	GpsLat   *float64 `json:"gpsLat"`
	GpsLng   *float64 `json:"gpsLng"`
}

type UpdateProfileRequest struct {
	FullName *string  `json:"full_name"`
	City     *string  `json:"city"`
	State    *string  `json:"state"`
	GpsLat   *float64 `json:"gpsLat"`
	GpsLng   *float64 `json:"gpsLng"`
}

type LoginResponseData struct {
	UserID      string   `json:"userId"`
	Phone       string   `json:"phone"`
	FullName    string   `json:"full_name"`
	Role        UserRole `json:"role"`
	AccessToken string   `json:"access_token"`
}

type ReportQuery struct {
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
	State         string `form:"state"`
	Status        string `form:"status"`
	DetectionType string `form:"detection_type"`
}

type UpdateReportStatusRequest struct {
	Status      ReportStatus `json:"status"`
	ReviewNotes string       `json:"reviewNotes"`
}

type CreateAlertRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	TargetState string  `json:"targetState"`
	TargetCity  *string `json:"targetCity"`
	ExpiresAt   string  `json:"expiresAt"`
}

type UpdateAlertRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Severity    *string `json:"severity"`
	TargetState *string `json:"targetState"`
	TargetCity  *string `json:"targetCity"`
	ExpiresAt   *string `json:"expiresAt"`
}

type AlertQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Severity string `form:"severity"`
	State    string `form:"state"`
}
