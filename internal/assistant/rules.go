package assistant

import (
	"strings"

	"flux-web/internal/domain"
	"flux-web/internal/navigation"
)

// Topic names the category a rule answers.
type Topic string

const (
	TopicNavigate  Topic = "navigate"
	TopicServices  Topic = "services"
	TopicPricing   Topic = "pricing"
	TopicContact   Topic = "contact"
	TopicTimeline  Topic = "timeline"
	TopicSupport   Topic = "support"
	TopicTech      Topic = "technology"
	TopicCompany   Topic = "company"
	TopicGreeting  Topic = "greeting"
	TopicGratitude Topic = "gratitude"
	TopicFarewell  Topic = "farewell"
	TopicHelp      Topic = "help"
	TopicDefault   Topic = "default"
)

// Rule matches when any trigger occurs in the lower-cased input and, if
// Qualifiers is non-empty, any qualifier occurs as well.
type Rule struct {
	Topic      Topic
	Triggers   []string
	Qualifiers []string
	Response   string
	Action     *domain.Action
}

func (r Rule) matches(lower string) bool {
	return containsAny(lower, r.Triggers) && (len(r.Qualifiers) == 0 || containsAny(lower, r.Qualifiers))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func navigate(page navigation.PageID) *domain.Action {
	return &domain.Action{Kind: domain.ActionNavigate, Payload: string(page)}
}

func suggest(text string) *domain.Action {
	return &domain.Action{Kind: domain.ActionSuggestion, Payload: text}
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}

var (
	navigationVerbs = []string{"go to", "navigate to", "take me to"}
	directPhrasing  = []string{"page", "show", "visit"}
)

type destination struct {
	page     navigation.PageID
	keywords []string
	response string
}

// destinations are listed in the order they are tested.
var destinations = []destination{
	{navigation.Home, []string{"home"}, "Sure! I'll take you to the homepage."},
	{navigation.About, []string{"about"}, "Taking you to our About Us page to learn more about Flux Solutions."},
	{navigation.Services, []string{"service"}, "I'll show you our services page with all the solutions we offer."},
	{navigation.Projects, []string{"project"}, "Let me show you our portfolio of completed projects."},
	{navigation.FAQ, []string{"faq", "question"}, "I'll take you to our FAQ section with answers to common questions."},
	{navigation.Contact, []string{"contact"}, "I'll direct you to our contact page where you can get in touch with us."},
}

const topicMenu = "• Our services (web development, mobile apps, design)\n" +
	"• Pricing and project timelines\n" +
	"• Contact information\n" +
	"• Technologies we work with\n" +
	"• Company information"

var defaultRule = Rule{
	Topic: TopicDefault,
	Response: lines(
		"I'm here to help with any questions about Flux Solutions. You can ask about:",
		"",
		topicMenu,
		"",
		"For more specific assistance, I can connect you with a human representative. What would you like to know?",
	),
	Action: suggest("Show me your services"),
}

var rules = buildRules()

func buildRules() []Rule {
	out := make([]Rule, 0, 2*len(destinations)+11)

	// "take me to the faq" style commands.
	for _, d := range destinations {
		out = append(out, Rule{
			Topic:      TopicNavigate,
			Triggers:   navigationVerbs,
			Qualifiers: d.keywords,
			Response:   d.response,
			Action:     navigate(d.page),
		})
	}
	// "show me the about page" style phrasing. Only "faq" names the faq
	// destination here, never "question".
	for _, d := range destinations {
		triggers := d.keywords
		if d.page == navigation.FAQ {
			triggers = []string{"faq"}
		}
		out = append(out, Rule{
			Topic:      TopicNavigate,
			Triggers:   triggers,
			Qualifiers: directPhrasing,
			Response:   d.response,
			Action:     navigate(d.page),
		})
	}

	return append(out,
		Rule{
			Topic:    TopicServices,
			Triggers: []string{"service", "offer", "do you provide", "what do you do"},
			Response: lines(
				"At Flux Solutions, we offer comprehensive software development services including:",
				"",
				"• Web Development (React, Vue.js, Angular)",
				"• Mobile App Development (Flutter, React Native)",
				"• UI/UX Design",
				"• Web Designing",
				"• WordPress Solutions",
				"• Graphic Designing",
				"• Problem Solving Services",
				"",
				"Would you like to see our services page for more details?",
			),
			Action: suggest("Show me your services"),
		},
		Rule{
			Topic:    TopicPricing,
			Triggers: []string{"price", "cost", "pricing", "budget", "how much"},
			Response: lines(
				"Our pricing is customized based on your project requirements. We offer:",
				"",
				"• Hourly rates starting at $50/hour for specialized expertise",
				"• Fixed-price options for well-defined projects",
				"• Monthly retainer packages for ongoing support",
				"",
				"Would you like me to connect you with our sales team for a detailed quote?",
			),
			Action: suggest("Connect me with sales team"),
		},
		Rule{
			Topic:    TopicContact,
			Triggers: []string{"contact", "talk", "speak", "phone", "email", "call", "reach"},
			Response: lines(
				"You can reach our team through:",
				"",
				"📧 Email: flux.solution929@gmail.com",
				"📱 Phone: +92 319 4699095",
				"📍 Location: Karachi, Sindh, Pakistan",
				"",
				"Or use the contact form on our website. Would you like me to take you to our contact page?",
			),
			Action: suggest("Take me to contact page"),
		},
		Rule{
			Topic:    TopicTimeline,
			Triggers: []string{"project", "timeline", "duration", "how long", "portfolio"},
			Response: lines(
				"Project timelines vary based on complexity and scope:",
				"",
				"• Simple websites: 2-4 weeks",
				"• E-commerce platforms: 4-8 weeks",
				"• Custom web applications: 2-6 months",
				"• Mobile apps: 3-6 months",
				"",
				"We provide detailed timelines during our initial consultation. Would you like to see our project portfolio?",
			),
			Action: suggest("Show me your projects"),
		},
		Rule{
			Topic:    TopicSupport,
			Triggers: []string{"support", "maintenance", "help", "bug", "issue"},
			Response: lines(
				"Yes, we offer comprehensive maintenance and support packages:",
				"",
				"• Bug fixes and troubleshooting",
				"• Performance optimization",
				"• Security updates",
				"• Feature enhancements",
				"• 24/7 monitoring (premium plans)",
				"",
				"Our support ensures your software continues to perform optimally. Would you like details about our support packages?",
			),
			Action: suggest("Tell me about support packages"),
		},
		Rule{
			Topic:    TopicTech,
			Triggers: []string{"technology", "tech", "framework", "language", "stack", "tools"},
			Response: lines(
				"We work with modern technologies including:",
				"",
				"• HTML5, CSS3, JavaScript, TypeScript",
				"• MERN Stack (MongoDB, Express.js, React, Node.js)",
				"• Figma for UI/UX Designing",
				"• Flutter for cross-platform mobile apps",
				"• Java for enterprise solutions",
				"• WordPress for content management",
				"",
				"Our team stays updated with the latest industry trends. Do you have a preferred technology stack?",
			),
			Action: suggest("Show me your services"),
		},
		Rule{
			Topic:    TopicCompany,
			Triggers: []string{"company", "flux", "about", "who are you", "what is"},
			Response: lines(
				"Flux Solutions is a software house based in Karachi, Pakistan, specializing in:",
				"",
				"• Custom software development",
				"• Web and mobile applications",
				"• UI/UX design services",
				"• WordPress solutions",
				"• Graphic design",
				"• Technical problem solving",
				"",
				"We empower businesses through innovative technology solutions. Would you like to know more about any specific aspect of our work?",
			),
			Action: suggest("Tell me more about Flux Solutions"),
		},
		Rule{
			Topic:    TopicGreeting,
			Triggers: []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "greetings"},
			Response: lines(
				"Hello! I'm your AI assistant from Flux Solutions. How can I assist you with our services today? You can ask about:",
				"",
				topicMenu,
				"",
				"Or I can take you directly to any page on our website!",
			),
			Action: suggest("Show me your services"),
		},
		Rule{
			Topic:    TopicGratitude,
			Triggers: []string{"thank"},
			Response: "You're welcome! Is there anything else I can help you with regarding our services at Flux Solutions?",
			Action:   suggest("Show me your projects"),
		},
		Rule{
			Topic:    TopicFarewell,
			Triggers: []string{"bye", "goodbye", "see you", "later"},
			Response: "Goodbye! Feel free to reach out if you have any more questions about Flux Solutions. Have a great day!",
		},
		Rule{
			Topic:    TopicHelp,
			Triggers: []string{"help", "what can you do", "commands", "options"},
			Response: lines(
				"I can help you with:",
				"",
				"• Answering questions about our services",
				"• Providing pricing information",
				"• Sharing contact details",
				"• Explaining our technologies",
				"• Navigating to different pages",
				"• Showing project timelines",
				"",
				"Try asking questions like:",
				"• 'What services do you offer?'",
				"• 'Take me to the contact page'",
				"• 'Show me your projects'",
				"• 'How much does a website cost?'",
				"",
				"What would you like to know?",
			),
			Action: suggest("What services do you offer?"),
		},
	)
}
