package catalog

var defaultCourses = []Course{
	{
		ID:          1,
		Title:       "Introduction to HTML",
		Description: "Learn the basics of web structure using HTML.",
		Lessons:     []string{"Tags & Elements", "Links & Images", "Forms & Tables"},
	},
	{
		ID:          2,
		Title:       "CSS for Beginners",
		Description: "Style your web pages with colors, layouts, and animations.",
		Lessons:     []string{"Selectors & Colors", "Flexbox & Grid", "Transitions & Hover Effects"},
	},
	{
		ID:          3,
		Title:       "JavaScript Essentials",
		Description: "Make your website dynamic and interactive using JavaScript.",
		Lessons:     []string{"Variables & Functions", "DOM Manipulation", "Event Handling"},
	},
}
