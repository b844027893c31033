package domain

// DefaultListings returns fresh copies of the built-in seed set merged into an
// empty or name-disjoint local store on first run. Credentials are
// intentionally absent: the local-simulated backend never checks passwords.
func DefaultListings() []Listing {
	return []Listing{
		{
			ID:          1,
			Name:        "Sarah Johnson",
			Specialty:   "Residential Wiring",
			Rating:      4.8,
			Reviews:     120,
			Location:    "Lagos",
			State:       "Lagos",
			Image:       "assets/images/profile1.jpg",
			Description: "Expert in residential wiring and lighting installations with over 7 years of experience.",
			Gallery:     []string{"assets/images/gallery1.jpg", "assets/images/gallery2.jpg"},
		},
		{
			ID:          2,
			Name:        "Michael Chen",
			Specialty:   "Commercial Systems",
			Rating:      4.9,
			Reviews:     150,
			Location:    "Abuja",
			State:       "FCT - Abuja",
			Image:       "assets/images/profile2.jpg",
			Description: "Specializes in commercial electrical systems and panel upgrades.",
			Gallery:     []string{"assets/images/gallery3.jpg", "assets/images/gallery4.jpg"},
		},
		{
			ID:          3,
			Name:        "David Rodriguez",
			Specialty:   "Emergency Repairs",
			Rating:      4.7,
			Reviews:     95,
			Location:    "Ikeja, Lagos",
			State:       "Lagos",
			Image:       "assets/images/profile3.jpg",
			Description: "Offers a wide range of electrical services, including emergency repairs available 24/7.",
			Gallery:     []string{"assets/images/gallery5.jpg"},
		},
		{
			ID:          4,
			Name:        "Emily Carter",
			Specialty:   "Smart Home",
			Rating:      4.6,
			Reviews:     110,
			Location:    "Port Harcourt",
			State:       "Rivers",
			Image:       "assets/images/profile4.jpg",
			Description: "Focuses on smart home installations and energy-efficient solutions.",
			Gallery:     []string{"assets/images/gallery6.jpg"},
		},
	}
}

// SeedAccount pairs a seed listing with the credentials the server assigns it
// when bootstrapping an empty database.
type SeedAccount struct {
	Listing  Listing
	Email    string
	Password string
}

// SeedAccounts returns the accounts created by server-side seeding: the
// default directory plus the administrative account.
func SeedAccounts() []SeedAccount {
	defaults := DefaultListings()
	accounts := []SeedAccount{
		{Listing: defaults[0], Email: "sarah@example.com", Password: "password"},
		{Listing: defaults[1], Email: "michael@example.com", Password: "password"},
		{Listing: defaults[2], Email: "david@example.com", Password: "password"},
		{Listing: defaults[3], Email: "emily@example.com", Password: "password"},
		{
			Listing: Listing{
				Name:        "Admin",
				Specialty:   "Administrator",
				Location:    "Nigeria",
				State:       "FCT - Abuja",
				Image:       PlaceholderImage,
				Description: "SparkConnect Administrator",
				Gallery:     []string{},
			},
			Email:    AdminEmail,
			Password: "admin123",
		},
	}
	return accounts
}
