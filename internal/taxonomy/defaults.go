package taxonomy

// DefaultDefinitions returns the built-in tag table. Order matters: when an
// alias appears in more than one entry the earlier entry wins.
func DefaultDefinitions() []Definition {
	return []Definition{
		// Domains
		{Canonical: "E-commerce", Category: CategoryDomain, Aliases: []string{"ecommerce", "e commerce", "online store", "online shop", "shop", "retail", "marketplace"}},
		{Canonical: "FinTech", Category: CategoryDomain, Aliases: []string{"fin tech", "finance", "financial", "banking", "payments", "budgeting"}},
		{Canonical: "HealthTech", Category: CategoryDomain, Aliases: []string{"health tech", "health", "healthcare", "medical", "fitness", "wellness"}},
		{Canonical: "EdTech", Category: CategoryDomain, Aliases: []string{"ed tech", "education", "e-learning", "elearning", "learning", "lms"}},
		{Canonical: "Travel & Hospitality", Category: CategoryDomain, Aliases: []string{"travel", "tourism", "hotel", "hospitality", "booking"}},
		{Canonical: "Real Estate", Category: CategoryDomain, Aliases: []string{"realestate", "property", "proptech"}},
		{Canonical: "Social Media", Category: CategoryDomain, Aliases: []string{"social", "social network", "community"}},
		{Canonical: "Food & Beverage", Category: CategoryDomain, Aliases: []string{"food", "restaurant", "beverage", "delivery", "recipes"}},
		{Canonical: "Entertainment", Category: CategoryDomain, Aliases: []string{"media", "music", "video", "streaming", "gaming", "games"}},
		{Canonical: "Productivity", Category: CategoryDomain, Aliases: []string{"task management", "todo", "to-do", "notes"}},
		{Canonical: "AI & Machine Learning", Category: CategoryDomain, Aliases: []string{"ai", "ml", "machine learning", "artificial intelligence", "llm", "genai"}},

		// Platforms
		{Canonical: "Web", Category: CategoryPlatform, Aliases: []string{"web app", "webapp", "website", "browser"}},
		{Canonical: "iOS", Category: CategoryPlatform, Aliases: []string{"iphone", "ipad", "apple"}},
		{Canonical: "Android", Category: CategoryPlatform, Aliases: []string{"google play"}},
		{Canonical: "Cross-platform", Category: CategoryPlatform, Aliases: []string{"cross platform", "multiplatform", "hybrid"}},
		{Canonical: "Desktop", Category: CategoryPlatform, Aliases: []string{"macos", "windows", "linux"}},
		{Canonical: "Shopify", Category: CategoryPlatform, Aliases: []string{"shopify store", "shopify theme"}},
		{Canonical: "WordPress", Category: CategoryPlatform, Aliases: []string{"wp", "woocommerce"}},
		{Canonical: "Webflow", Category: CategoryPlatform},

		// Styles
		{Canonical: "Minimalist", Category: CategoryStyle, Aliases: []string{"minimal", "minimalism", "clean"}},
		{Canonical: "Modern", Category: CategoryStyle, Aliases: []string{"contemporary", "sleek"}},
		{Canonical: "Dark Mode", Category: CategoryStyle, Aliases: []string{"dark", "dark theme"}},
		{Canonical: "Responsive", Category: CategoryStyle, Aliases: []string{"mobile friendly", "mobile-friendly", "adaptive"}},
		{Canonical: "Playful", Category: CategoryStyle, Aliases: []string{"fun", "colorful", "vibrant"}},
		{Canonical: "Corporate", Category: CategoryStyle, Aliases: []string{"professional", "business"}},

		// Features
		{Canonical: "Authentication", Category: CategoryFeature, Aliases: []string{"auth", "login", "sign in", "signin", "sso", "oauth"}},
		{Canonical: "Payments Integration", Category: CategoryFeature, Aliases: []string{"payment integration", "payment gateway", "checkout"}},
		{Canonical: "Booking & Scheduling", Category: CategoryFeature, Aliases: []string{"booking", "scheduling", "appointments", "calendar", "reservations"}},
		{Canonical: "Real-time", Category: CategoryFeature, Aliases: []string{"realtime", "real time", "live updates", "websockets", "chat"}},
		{Canonical: "Analytics Dashboard", Category: CategoryFeature, Aliases: []string{"dashboard", "analytics", "reporting", "charts", "admin panel"}},
		{Canonical: "Search", Category: CategoryFeature, Aliases: []string{"filtering", "full-text search"}},
		{Canonical: "Maps & Location", Category: CategoryFeature, Aliases: []string{"maps", "map", "location", "geolocation", "gps"}},
		{Canonical: "Notifications", Category: CategoryFeature, Aliases: []string{"push notifications", "alerts", "email notifications"}},
		{Canonical: "CMS", Category: CategoryFeature, Aliases: []string{"content management", "headless cms", "blog"}},

		// Technologies
		{Canonical: "React", Category: CategoryTechnology, Aliases: []string{"reactjs", "react.js"}},
		{Canonical: "Next.js", Category: CategoryTechnology, Aliases: []string{"next", "nextjs"}},
		{Canonical: "Vue.js", Category: CategoryTechnology, Aliases: []string{"vue", "vuejs", "nuxt"}},
		{Canonical: "Angular", Category: CategoryTechnology, Aliases: []string{"angularjs"}},
		{Canonical: "Node.js", Category: CategoryTechnology, Aliases: []string{"node", "nodejs", "express", "expressjs"}},
		{Canonical: "TypeScript", Category: CategoryTechnology, Aliases: []string{"ts"}},
		{Canonical: "JavaScript", Category: CategoryTechnology, Aliases: []string{"js", "ecmascript"}},
		{Canonical: "Python", Category: CategoryTechnology, Aliases: []string{"py", "django", "flask", "fastapi"}},
		{Canonical: "Go", Category: CategoryTechnology, Aliases: []string{"golang"}},
		{Canonical: "Flutter", Category: CategoryTechnology, Aliases: []string{"dart"}},
		{Canonical: "React Native", Category: CategoryTechnology, Aliases: []string{"react-native", "expo"}},
		{Canonical: "Swift", Category: CategoryTechnology, Aliases: []string{"swiftui"}},
		{Canonical: "Kotlin", Category: CategoryTechnology, Aliases: []string{"jetpack compose"}},
		{Canonical: "Firebase", Category: CategoryTechnology, Aliases: []string{"firestore"}},
		{Canonical: "Supabase", Category: CategoryTechnology},
		{Canonical: "PostgreSQL", Category: CategoryTechnology, Aliases: []string{"postgres", "psql"}},
		{Canonical: "MongoDB", Category: CategoryTechnology, Aliases: []string{"mongo"}},
		{Canonical: "Tailwind CSS", Category: CategoryTechnology, Aliases: []string{"tailwind", "tailwindcss"}},
		{Canonical: "Docker", Category: CategoryTechnology, Aliases: []string{"containers"}},
		{Canonical: "AWS", Category: CategoryTechnology, Aliases: []string{"amazon web services", "lambda"}},
		{Canonical: "Stripe", Category: CategoryTechnology},
		{Canonical: "OpenAI", Category: CategoryTechnology, Aliases: []string{"gpt", "chatgpt"}},
		{Canonical: "GraphQL", Category: CategoryTechnology, Aliases: []string{"apollo"}},
	}
}

// Default returns a taxonomy built from DefaultDefinitions.
func Default() *Taxonomy {
	return MustNew(DefaultDefinitions())
}
