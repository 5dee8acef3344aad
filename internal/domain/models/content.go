// internal/domain/models/content.go
package models

// HomeContent is a banner shown on the home page: a title over an image
// hosted on the external media host.
type HomeContent struct {
	Meta     `bson:",inline"`
	Title    string `bson:"title" json:"title"`
	Image    string `bson:"image" json:"image"`
	ImageKey string `bson:"image_key,omitempty" json:"-"` // media-host object key, kept for cleanup
}

// HomeCourse is a course teaser on the home page. Text only.
type HomeCourse struct {
	Meta        `bson:",inline"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

// HomeService is a service card on the home page. Position controls display
// order; inactive services are kept but hidden by the frontend.
type HomeService struct {
	Meta        `bson:",inline"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Image       string `bson:"image" json:"image"`
	ImageKey    string `bson:"image_key,omitempty" json:"-"`
	Position    int    `bson:"position" json:"position"`
	IsActive    bool   `bson:"is_active" json:"isActive"`
}

// ServiceContent is a full service detail page: description plus a list of
// bullet points (at least four after normalization).
type ServiceContent struct {
	Meta        `bson:",inline"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Image       string   `bson:"image" json:"image"`
	ImageKey    string   `bson:"image_key,omitempty" json:"-"`
	Points      []string `bson:"points" json:"points"`
}

// Career is an open position or program listing. The image is optional.
type Career struct {
	Meta        `bson:",inline"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Image       string   `bson:"image,omitempty" json:"image,omitempty"`
	ImageKey    string   `bson:"image_key,omitempty" json:"-"`
	Points      []string `bson:"points" json:"points"`
}

// Contact is a lead submitted through the public contact form.
type Contact struct {
	Meta    `bson:",inline"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"` // stored lower-cased
	Phone   string `bson:"phone" json:"phone"`
	Message string `bson:"message" json:"message"`
}

// Enroll is an enrollment request submitted through the public enroll form.
// Creating one bumps the site-stats customer counter.
type Enroll struct {
	Meta    `bson:",inline"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone" json:"phone"` // normalized to exactly 10 digits
	Course  string `bson:"course" json:"course"`
	Message string `bson:"message" json:"message"`
}

// EnrollCourse is a course offered on the enrollment form's course picker.
type EnrollCourse struct {
	Meta       `bson:",inline"`
	CourseName string `bson:"course_name" json:"courseName"`
	IsActive   bool   `bson:"is_active" json:"isActive"`
}
