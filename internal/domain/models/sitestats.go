// internal/domain/models/sitestats.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteStats is the singleton counters document shown on the marketing site.
// Exactly one document exists per deployment, keyed by SiteStatsKey. It is
// created lazily on first read or write and never deleted.
type SiteStats struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Key              string             `bson:"key" json:"-"`
	TotalEnrollments int64              `bson:"total_enrollments" json:"totalEnrollments"`
	TotalCourses     int64              `bson:"total_courses" json:"totalCourses"`
	TotalServices    int64              `bson:"total_services" json:"totalServices"`
	TotalCareers     int64              `bson:"total_careers" json:"totalCareers"`
	TotalContacts    int64              `bson:"total_contacts" json:"totalContacts"`
	CustomerCount    int64              `bson:"customer_count" json:"customerCount"`
	DisplayedCount   int64              `bson:"displayed_count" json:"displayedCount"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}

// SiteStatsKey is the fixed key of the singleton stats document.
const SiteStatsKey = "site"

// Seed values applied when the singleton is created by a read. These are the
// marketing numbers the site launched with, not zero; do not change them
// without a product decision.
const (
	SeedCustomerCount  = 21
	SeedDisplayedCount = 21
)

// StatsFields maps the JSON field names accepted by the stats update endpoint
// to their stored document fields. Updates with keys outside this map are
// rejected.
var StatsFields = map[string]string{
	"totalEnrollments": "total_enrollments",
	"totalCourses":     "total_courses",
	"totalServices":    "total_services",
	"totalCareers":     "total_careers",
	"totalContacts":    "total_contacts",
	"customerCount":    "customer_count",
	"displayedCount":   "displayed_count",
}
