package content

// BusinessConfig is the editable site text. JSON keys match the documents
// stored by earlier versions of the site.
type BusinessConfig struct {
	Company  Company   `json:"company" yaml:"company"`
	Contact  Contact   `json:"contact" yaml:"contact"`
	Branding Branding  `json:"branding" yaml:"branding"`
	Homepage Homepage  `json:"homepage" yaml:"homepage"`
	Services []Service `json:"services" yaml:"services"`
	About    About     `json:"about" yaml:"about"`
}

type Company struct {
	Name        string `json:"name" yaml:"name"`
	Tagline     string `json:"tagline" yaml:"tagline"`
	Description string `json:"description" yaml:"description"`
}

type Contact struct {
	Email   string  `json:"email" yaml:"email"`
	Phone   string  `json:"phone" yaml:"phone"`
	Address Address `json:"address" yaml:"address"`
	Hours   Hours   `json:"hours" yaml:"hours"`
}

type Address struct {
	Street string `json:"street" yaml:"street"`
	City   string `json:"city" yaml:"city"`
	State  string `json:"state" yaml:"state"`
	Zip    string `json:"zip" yaml:"zip"`
}

type Hours struct {
	Weekdays string `json:"weekdays" yaml:"weekdays"`
	Saturday string `json:"saturday" yaml:"saturday"`
	Sunday   string `json:"sunday" yaml:"sunday"`
}

type Branding struct {
	PrimaryColor string `json:"primaryColor" yaml:"primaryColor"`
}

type Homepage struct {
	HeroTitle    string    `json:"heroTitle" yaml:"heroTitle"`
	HeroSubtitle string    `json:"heroSubtitle" yaml:"heroSubtitle"`
	CTAText      string    `json:"ctaText" yaml:"ctaText"`
	Features     []Feature `json:"features" yaml:"features"`
}

type Feature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
}

type Service struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon" yaml:"icon"`
	Features    []string `json:"features" yaml:"features"`
}

type About struct {
	Mission string       `json:"mission" yaml:"mission"`
	Values  []string     `json:"values" yaml:"values"`
	Team    []TeamMember `json:"team" yaml:"team"`
	Stats   Stats        `json:"stats" yaml:"stats"`
}

type TeamMember struct {
	Name string `json:"name" yaml:"name"`
	Role string `json:"role" yaml:"role"`
	Bio  string `json:"bio" yaml:"bio"`
}

type Stats struct {
	Clients string `json:"clients" yaml:"clients"`
	Years   string `json:"years" yaml:"years"`
	Team    string `json:"team" yaml:"team"`
}

// Default returns a fresh copy of the built-in document. Callers may
// modify the result freely.
func Default() BusinessConfig {
	return BusinessConfig{
		Company: Company{
			Name:        "YourBusiness",
			Tagline:     "Building the future of business solutions.",
			Description: "Professional business web application",
		},
		Contact: Contact{
			Email: "contact@yourbusiness.com",
			Phone: "+1 (555) 123-4567",
			Address: Address{
				Street: "123 Business Street",
				City:   "City",
				State:  "State",
				Zip:    "12345",
			},
			Hours: Hours{
				Weekdays: "9:00 AM - 6:00 PM",
				Saturday: "10:00 AM - 4:00 PM",
				Sunday:   "Closed",
			},
		},
		Branding: Branding{PrimaryColor: "#0ea5e9"},
		Homepage: Homepage{
			HeroTitle:    "Welcome to Your Business",
			HeroSubtitle: "We provide innovative solutions to help your business grow and succeed in today's competitive market.",
			CTAText:      "Get Started",
			Features: []Feature{
				{
					Title:       "Fast & Efficient",
					Description: "Streamlined processes that save you time and resources while delivering outstanding results.",
					Icon:        "⚡",
				},
				{
					Title:       "Secure & Reliable",
					Description: "Your data and business operations are protected with industry-leading security measures.",
					Icon:        "🔒",
				},
				{
					Title:       "Expert Support",
					Description: "Our dedicated team of professionals is always ready to assist you with any questions or needs.",
					Icon:        "👥",
				},
			},
		},
		Services: []Service{
			{
				Title:       "Business Consulting",
				Description: "Strategic guidance to help your business grow and overcome challenges.",
				Icon:        "💼",
				Features:    []string{"Strategic Planning", "Market Analysis", "Growth Strategies"},
			},
			{
				Title:       "Digital Solutions",
				Description: "Modern technology solutions to streamline your operations.",
				Icon:        "💻",
				Features:    []string{"Web Development", "Cloud Services", "Automation"},
			},
			{
				Title:       "Marketing Services",
				Description: "Comprehensive marketing strategies to boost your brand presence.",
				Icon:        "📈",
				Features:    []string{"SEO Optimization", "Social Media", "Content Marketing"},
			},
			{
				Title:       "Financial Services",
				Description: "Expert financial planning and management for your business.",
				Icon:        "💰",
				Features:    []string{"Financial Planning", "Tax Consulting", "Investment Advice"},
			},
			{
				Title:       "Training & Development",
				Description: "Empower your team with professional training programs.",
				Icon:        "🎓",
				Features:    []string{"Team Training", "Leadership Development", "Skills Enhancement"},
			},
			{
				Title:       "Support & Maintenance",
				Description: "Ongoing support to keep your business running smoothly.",
				Icon:        "🔧",
				Features:    []string{"24/7 Support", "Regular Updates", "Technical Maintenance"},
			},
		},
		About: About{
			Mission: "At YourBusiness, we are committed to empowering businesses of all sizes with innovative solutions that drive growth and success. " +
				"We believe in building long-term partnerships with our clients, understanding their unique needs, and delivering exceptional value.",
			Values: []string{
				"Integrity in everything we do",
				"Innovation and continuous improvement",
				"Customer-centric approach",
				"Excellence in execution",
			},
			Team: []TeamMember{
				{Name: "John Doe", Role: "CEO & Founder", Bio: "With over 15 years of experience in business development and strategy."},
				{Name: "Jane Smith", Role: "CTO", Bio: "Technology expert specializing in scalable solutions and innovation."},
				{Name: "Mike Johnson", Role: "Head of Operations", Bio: "Operations specialist focused on efficiency and customer satisfaction."},
			},
			Stats: Stats{Clients: "500+", Years: "10+", Team: "50+"},
		},
	}
}
