package service

import (
	"fmt"
	"strings"

	"github.com/mockmate/mockmate-backend/internal/model"
)

// buildTemplateContent synthesizes curriculum content for a skill tag at
// a given level. Deterministic: same tag and level always produce the
// same template. Persistence and dedup happen in the template store.
func buildTemplateContent(skillTag string, level model.Level) *model.PlanTemplate {
	difficulty := model.TemplateIntermediate
	numDays := 5
	switch level {
	case model.LevelJunior:
		difficulty = model.TemplateBeginner
		numDays = 3
	case model.LevelSenior:
		difficulty = model.TemplateAdvanced
		numDays = 7
	}

	var t *model.PlanTemplate
	switch {
	case strings.Contains(skillTag, "communication.star") || strings.Contains(skillTag, "behavioral"):
		t = starTemplate(level, numDays)
	case strings.Contains(skillTag, "backend") || strings.Contains(skillTag, "django"):
		t = backendTemplate(skillTag, level, numDays)
	case strings.Contains(skillTag, "sql") || strings.Contains(skillTag, "database"):
		t = sqlTemplate(level, numDays)
	case strings.Contains(skillTag, "system_design") || strings.Contains(skillTag, "scaling"):
		t = systemDesignTemplate(level, numDays)
	case strings.Contains(skillTag, "frontend") || strings.Contains(skillTag, "react"):
		t = frontendTemplate(skillTag, level, numDays)
	case strings.Contains(skillTag, "product") || strings.Contains(skillTag, "metrics"):
		t = productTemplate(level, numDays)
	case strings.Contains(skillTag, "algorithm"):
		t = algorithmTemplate(level, numDays)
	default:
		t = genericTemplate(skillTag, level, numDays)
	}

	t.SkillTag = skillTag
	t.Difficulty = difficulty
	return t
}

// pick returns lo for junior level, hi otherwise.
func pick(level model.Level, lo, hi int) int {
	if level == model.LevelJunior {
		return lo
	}
	return hi
}

func levelDuration(level model.Level, junior, mid, senior int) int {
	switch level {
	case model.LevelJunior:
		return junior
	case model.LevelSenior:
		return senior
	default:
		return mid
	}
}

func starTemplate(level model.Level, numDays int) *model.PlanTemplate {
	steps := []model.PlanStep{
		{
			Day:   1,
			Topic: "STAR Framework Basics",
			Drills: []string{
				fmt.Sprintf("Read STAR framework guide (%d min)", pick(level, 15, 20)),
				fmt.Sprintf("Watch %d example STAR answers (%d min)", pick(level, 2, 3), pick(level, 20, 30)),
				"Identify STAR components in sample answers (15 min)",
			},
			MiniMock:  "Tell me about a time you handled conflict",
			QuickTest: "Answer 1 question under 90 seconds using STAR",
		},
		{
			Day:   2,
			Topic: "Situation and Task",
			Drills: []string{
				fmt.Sprintf("Write %d situation statements (15 min)", pick(level, 3, 5)),
				fmt.Sprintf("Write %d task statements (15 min)", pick(level, 3, 5)),
				"Practice setting context clearly (20 min)",
			},
			MiniMock:  "Describe a challenging project you worked on",
			QuickTest: "Explain situation and task in 30 seconds",
		},
		{
			Day:   3,
			Topic: "Action - Your Role",
			Drills: []string{
				fmt.Sprintf("Write %d action statements using 'I' (20 min)", pick(level, 3, 5)),
				"Practice describing your specific actions (25 min)",
				"Avoid 'we' language - focus on your contribution (15 min)",
			},
			MiniMock:  "Tell me about a time you showed leadership",
			QuickTest: "Describe your actions clearly in 45 seconds",
		},
	}

	if numDays >= 5 {
		steps = append(steps,
			model.PlanStep{
				Day:   4,
				Topic: "Result - Quantify Impact",
				Drills: []string{
					fmt.Sprintf("Write %d result statements with metrics (20 min)", pick(level, 3, 5)),
					"Practice quantifying outcomes (25 min)",
					"Learn to show impact and learning (15 min)",
				},
				MiniMock:  "Describe a time you improved a process",
				QuickTest: "Explain results with numbers in 30 seconds",
			},
			model.PlanStep{
				Day:   5,
				Topic: "Complete STAR Stories",
				Drills: []string{
					fmt.Sprintf("Write %d complete STAR stories (30 min)", pick(level, 2, 3)),
					"Practice timing (90 seconds per story) (25 min)",
					"Get feedback on structure (20 min)",
				},
				MiniMock:  "Tell me about a time you failed",
				QuickTest: fmt.Sprintf("Deliver %d complete STAR answers under 3 minutes", pick(level, 1, 2)),
			},
		)
	}

	if numDays >= 7 {
		steps = append(steps,
			model.PlanStep{
				Day:   6,
				Topic: "Advanced STAR Techniques",
				Drills: []string{
					"Practice handling follow-up questions (25 min)",
					"Learn to adapt STAR for different question types (25 min)",
					"Practice under pressure (20 min)",
				},
				MiniMock:  "Answer complex behavioral question",
				QuickTest: "Handle 2 follow-up questions using STAR",
			},
			model.PlanStep{
				Day:   7,
				Topic: "STAR Mastery",
				Drills: []string{
					"Review all STAR stories (20 min)",
					"Practice 5 different scenarios (30 min)",
					"Final mock interview (20 min)",
				},
				MiniMock:  "Full behavioral interview simulation",
				QuickTest: "Answer 3 questions flawlessly using STAR",
			},
		)
	}

	return &model.PlanTemplate{
		Title:           "Master the STAR Method",
		Description:     "Learn and practice the STAR (Situation, Task, Action, Result) method for answering behavioral interview questions effectively.",
		Steps:           steps,
		DurationMinutes: levelDuration(level, 45, 60, 70),
	}
}

func backendTemplate(skillTag string, level model.Level, numDays int) *model.PlanTemplate {
	if !strings.Contains(skillTag, "auth") {
		return &model.PlanTemplate{
			Title:           "Backend Development - " + titleFromTag(skillTag),
			Description:     fmt.Sprintf("Master backend development concepts for %s.", skillTag),
			Steps:           genericSteps(level, numDays, "backend"),
			DurationMinutes: levelDuration(level, 45, 60, 70),
		}
	}

	steps := []model.PlanStep{
		{
			Day:   1,
			Topic: "Authentication Basics",
			Drills: []string{
				fmt.Sprintf("Read framework auth documentation (%d min)", pick(level, 25, 30)),
				"Understand user models and authentication backends (25 min)",
				"Practice creating and authenticating users (20 min)",
			},
			MiniMock:  "Explain how server-side authentication works",
			QuickTest: "Implement basic login/logout views",
		},
		{
			Day:   2,
			Topic: "Sessions and Middleware",
			Drills: []string{
				"Study the session framework (25 min)",
				"Understand authentication middleware (25 min)",
				"Practice session management (25 min)",
			},
			MiniMock:  "How do server sessions work?",
			QuickTest: "Explain session lifecycle",
		},
	}

	if numDays >= 3 {
		steps = append(steps, model.PlanStep{
			Day:   3,
			Topic: "JWT Tokens",
			Drills: []string{
				"Learn JWT token structure (25 min)",
				fmt.Sprintf("Implement JWT authentication (%d min)", pick(level, 25, 35)),
				"Practice token refresh flow (20 min)",
			},
			MiniMock:  "Explain JWT authentication flow",
			QuickTest: "Implement JWT login endpoint",
		})
	}
	if numDays >= 4 {
		steps = append(steps, model.PlanStep{
			Day:   4,
			Topic: "Permissions and Authorization",
			Drills: []string{
				"Study permission systems (30 min)",
				fmt.Sprintf("Practice %s permissions (25 min)", pickStr(level, "basic", "custom")),
				"Implement role-based access control (25 min)",
			},
			MiniMock:  "How do you implement permissions in a backend?",
			QuickTest: "Create custom permission check",
		})
	}
	if numDays >= 5 {
		steps = append(steps, model.PlanStep{
			Day:   5,
			Topic: "Security Best Practices",
			Drills: []string{
				"Learn password hashing (20 min)",
				"Study CSRF protection (25 min)",
				"Practice secure authentication patterns (30 min)",
			},
			MiniMock:  "How do you secure an authentication system?",
			QuickTest: "Explain security considerations",
		})
	}

	return &model.PlanTemplate{
		Title:           "Authentication Deep Dive",
		Description:     "Master authentication including sessions, tokens, and security best practices.",
		Steps:           capSteps(steps, numDays),
		DurationMinutes: levelDuration(level, 50, 65, 75),
	}
}

func sqlTemplate(level model.Level, numDays int) *model.PlanTemplate {
	steps := []model.PlanStep{
		{
			Day:   1,
			Topic: "Join Types Fundamentals",
			Drills: []string{
				"Review INNER JOIN syntax (20 min)",
				fmt.Sprintf("Practice %d INNER JOIN queries (30 min)", pick(level, 3, 5)),
				"Understand when to use each join type (20 min)",
			},
			MiniMock:  "Explain the difference between INNER and LEFT JOIN",
			QuickTest: "Write 3 JOIN queries",
		},
		{
			Day:   2,
			Topic: "LEFT and RIGHT Joins",
			Drills: []string{
				fmt.Sprintf("Practice LEFT JOIN queries (%d min)", pick(level, 25, 35)),
				"Practice RIGHT JOIN queries (20 min)",
				fmt.Sprintf("Solve %d problems with LEFT JOIN (25 min)", pick(level, 3, 5)),
			},
			MiniMock:  "When would you use LEFT JOIN vs INNER JOIN?",
			QuickTest: "Write LEFT JOIN query for user orders",
		},
	}

	if numDays >= 3 {
		steps = append(steps, model.PlanStep{
			Day:   3,
			Topic: "Multiple Table Joins",
			Drills: []string{
				fmt.Sprintf("Practice joining %d+ tables (35 min)", pick(level, 2, 3)),
				"Optimize join order (25 min)",
				fmt.Sprintf("Solve %s join problems (20 min)", pickStr(level, "simple", "complex")),
			},
			MiniMock:  "Join users, orders, and products tables",
			QuickTest: fmt.Sprintf("Write query joining %d tables", pick(level, 3, 4)),
		})
	}
	if numDays >= 4 {
		steps = append(steps, model.PlanStep{
			Day:   4,
			Topic: "Join Performance",
			Drills: []string{
				"Learn about join indexes (25 min)",
				fmt.Sprintf("Practice query optimization (%d min)", pick(level, 25, 35)),
				"Analyze execution plans (20 min)",
			},
			MiniMock:  "How do you optimize JOIN queries?",
			QuickTest: "Optimize a slow JOIN query",
		})
	}

	return &model.PlanTemplate{
		Title:           "SQL Joins Mastery",
		Description:     "Master SQL joins including inner, left, right, full outer joins and complex query optimization.",
		Steps:           capSteps(steps, numDays),
		DurationMinutes: levelDuration(level, 45, 55, 65),
	}
}

func systemDesignTemplate(level model.Level, numDays int) *model.PlanTemplate {
	steps := []model.PlanStep{
		{
			Day:   1,
			Topic: "Scaling Fundamentals",
			Drills: []string{
				"Read about horizontal vs vertical scaling (25 min)",
				"Study load balancing concepts (30 min)",
				fmt.Sprintf("Practice designing %s architectures (25 min)", pickStr(level, "basic", "scalable")),
			},
			MiniMock:  "Explain horizontal vs vertical scaling",
			QuickTest: "Design a scalable web service",
		},
		{
			Day:   2,
			Topic: "Caching Strategies",
			Drills: []string{
				"Learn caching patterns (CDN, Redis, Memcached) (35 min)",
				"Practice cache invalidation strategies (25 min)",
				"Design caching layer (20 min)",
			},
			MiniMock:  "How would you implement caching?",
			QuickTest: "Design cache strategy for API",
		},
	}

	if numDays >= 3 {
		steps = append(steps, model.PlanStep{
			Day:   3,
			Topic: "Database Scaling",
			Drills: []string{
				"Study database replication (30 min)",
				fmt.Sprintf("Learn %s sharding strategies (30 min)", pickStr(level, "basic", "advanced")),
				"Practice read/write splitting (20 min)",
			},
			MiniMock:  "How do you scale a database?",
			QuickTest: "Design sharding strategy",
		})
	}
	if numDays >= 4 {
		steps = append(steps, model.PlanStep{
			Day:   4,
			Topic: "Microservices Architecture",
			Drills: []string{
				"Learn microservices patterns (35 min)",
				"Study service communication (25 min)",
				"Practice designing microservices (20 min)",
			},
			MiniMock:  "When would you use microservices?",
			QuickTest: "Design microservices architecture",
		})
	}

	return &model.PlanTemplate{
		Title:           "System Design Scaling",
		Description:     "Learn horizontal and vertical scaling, load balancing, caching strategies, and distributed systems.",
		Steps:           capSteps(steps, numDays),
		DurationMinutes: levelDuration(level, 60, 75, 90),
	}
}

func frontendTemplate(skillTag string, level model.Level, numDays int) *model.PlanTemplate {
	if !strings.Contains(skillTag, "hooks") {
		return &model.PlanTemplate{
			Title:           "Frontend Development - " + titleFromTag(skillTag),
			Description:     fmt.Sprintf("Master frontend development concepts for %s.", skillTag),
			Steps:           genericSteps(level, numDays, "frontend"),
			DurationMinutes: levelDuration(level, 45, 60, 70),
		}
	}

	steps := []model.PlanStep{
		{
			Day:   1,
			Topic: "useState and useEffect",
			Drills: []string{
				fmt.Sprintf("Review useState hook (%d min)", pick(level, 15, 25)),
				fmt.Sprintf("Practice useEffect patterns (%d min)", pick(level, 25, 35)),
				"Build component with hooks (25 min)",
			},
			MiniMock:  "Explain useState and useEffect",
			QuickTest: "Build counter component with hooks",
		},
		{
			Day:   2,
			Topic: "useContext and useReducer",
			Drills: []string{
				"Learn useContext for state management (30 min)",
				fmt.Sprintf("Practice useReducer pattern (%d min)", pick(level, 20, 30)),
				"Build context provider (25 min)",
			},
			MiniMock:  "When would you use useContext vs props?",
			QuickTest: "Implement context with hooks",
		},
	}

	if numDays >= 3 {
		steps = append(steps, model.PlanStep{
			Day:   3,
			Topic: "Custom Hooks",
			Drills: []string{
				"Learn custom hook patterns (30 min)",
				fmt.Sprintf("Practice creating reusable hooks (%d min)", pick(level, 25, 35)),
				fmt.Sprintf("Build %d custom hooks (30 min)", pick(level, 2, 3)),
			},
			MiniMock:  "Create a custom hook for API calls",
			QuickTest: "Build custom useFetch hook",
		})
	}

	return &model.PlanTemplate{
		Title:           "React Hooks Mastery",
		Description:     "Master React hooks including useState, useEffect, useContext, and custom hooks patterns.",
		Steps:           capSteps(steps, numDays),
		DurationMinutes: levelDuration(level, 50, 60, 70),
	}
}

func productTemplate(level model.Level, numDays int) *model.PlanTemplate {
	steps := []model.PlanStep{
		{
			Day:   1,
			Topic: "Core Product Metrics",
			Drills: []string{
				"Learn DAU, MAU, retention metrics (30 min)",
				"Study conversion funnel metrics (25 min)",
				"Practice calculating key metrics (25 min)",
			},
			MiniMock:  "What metrics would you track for a social app?",
			QuickTest: "Define 5 key metrics for a product",
		},
		{
			Day:   2,
			Topic: "User Engagement Metrics",
			Drills: []string{
				"Study engagement metrics (session length, frequency) (30 min)",
				fmt.Sprintf("Learn %s cohort analysis (30 min)", pickStr(level, "basic", "advanced")),
				"Practice analyzing user behavior (20 min)",
			},
			MiniMock:  "How do you measure user engagement?",
			QuickTest: "Analyze user engagement data",
		},
	}

	if numDays >= 3 {
		steps = append(steps, model.PlanStep{
			Day:   3,
			Topic: "Business Metrics",
			Drills: []string{
				"Learn revenue metrics (ARPU, LTV, CAC) (35 min)",
				"Study growth metrics (25 min)",
				"Practice calculating business KPIs (20 min)",
			},
			MiniMock:  "Explain LTV and CAC",
			QuickTest: "Calculate key business metrics",
		})
	}

	return &model.PlanTemplate{
		Title:           "Product Metrics and KPIs",
		Description:     "Learn to define, track, and analyze product metrics including user engagement, retention, and business KPIs.",
		Steps:           capSteps(steps, numDays),
		DurationMinutes: levelDuration(level, 45, 55, 65),
	}
}

func algorithmTemplate(level model.Level, numDays int) *model.PlanTemplate {
	steps := []model.PlanStep{
		{
			Day:   1,
			Topic: "Time and Space Complexity",
			Drills: []string{
				fmt.Sprintf("Review Big O notation (%d min)", pick(level, 20, 30)),
				"Practice analyzing complexity (30 min)",
				fmt.Sprintf("Solve %d problems analyzing complexity (20 min)", pick(level, 2, 3)),
			},
			MiniMock:  "Explain time complexity of binary search",
			QuickTest: "Analyze complexity of 3 algorithms",
		},
		{
			Day:   2,
			Topic: "Common Patterns - Two Pointers",
			Drills: []string{
				"Learn two pointers pattern (25 min)",
				fmt.Sprintf("Solve %d two pointer problems (35 min)", pick(level, 3, 5)),
				"Practice variations (20 min)",
			},
			MiniMock:  "Solve two sum problem",
			QuickTest: "Implement two pointers solution",
		},
	}

	if numDays >= 3 {
		steps = append(steps, model.PlanStep{
			Day:   3,
			Topic: "Common Patterns - Sliding Window",
			Drills: []string{
				"Learn sliding window pattern (25 min)",
				fmt.Sprintf("Solve %d sliding window problems (35 min)", pick(level, 3, 5)),
				"Practice optimization (20 min)",
			},
			MiniMock:  "Find longest substring without repeating characters",
			QuickTest: "Implement sliding window solution",
		})
	}
	if numDays >= 4 {
		steps = append(steps, model.PlanStep{
			Day:   4,
			Topic: "Hash Maps and Sets",
			Drills: []string{
				"Review hash map operations (20 min)",
				fmt.Sprintf("Solve %d hash map problems (35 min)", pick(level, 3, 5)),
				"Practice set operations (25 min)",
			},
			MiniMock:  "When would you use a hash map?",
			QuickTest: "Solve problem using hash map",
		})
	}

	return &model.PlanTemplate{
		Title:           "Algorithm Problem-Solving",
		Description:     "Master algorithm problem-solving techniques including time/space complexity, common patterns, and practice strategies.",
		Steps:           capSteps(steps, numDays),
		DurationMinutes: levelDuration(level, 50, 65, 80),
	}
}

func genericTemplate(skillTag string, level model.Level, numDays int) *model.PlanTemplate {
	name := titleFromTag(skillTag)
	category := skillTag
	if i := strings.Index(skillTag, "."); i > 0 {
		category = skillTag[:i]
	}
	return &model.PlanTemplate{
		Title:           "Master " + name,
		Description:     fmt.Sprintf("Learn and practice %s concepts and techniques.", name),
		Steps:           genericSteps(level, numDays, category),
		DurationMinutes: levelDuration(level, 45, 60, 75),
	}
}

// genericSteps produces the Fundamentals → Practice → Advanced fallback
// curriculum, extended with deep-dive days past day 3.
func genericSteps(level model.Level, numDays int, category string) []model.PlanStep {
	steps := make([]model.PlanStep, 0, numDays)
	for day := 1; day <= numDays; day++ {
		var topic string
		var drills []string
		switch day {
		case 1:
			topic = "Fundamentals"
			drills = []string{
				fmt.Sprintf("Read documentation (%d min)", pick(level, 20, 30)),
				"Understand core concepts (25 min)",
				"Practice basic examples (20 min)",
			}
		case 2:
			topic = "Practice and Application"
			drills = []string{
				fmt.Sprintf("Solve %d practice problems (30 min)", pick(level, 3, 5)),
				"Review solutions (20 min)",
				"Identify patterns (15 min)",
			}
		case 3:
			topic = "Advanced Concepts"
			drills = []string{
				fmt.Sprintf("Study %s topics (30 min)", pickStr(level, "intermediate", "advanced")),
				"Practice complex scenarios (25 min)",
				"Apply to real-world examples (20 min)",
			}
		default:
			topic = fmt.Sprintf("Day %d - Deep Dive", day)
			drills = []string{
				"Review previous concepts (15 min)",
				fmt.Sprintf("Practice %s problems (30 min)", category),
				"Build practical examples (25 min)",
			}
		}
		steps = append(steps, model.PlanStep{
			Day:       day,
			Topic:     topic,
			Drills:    drills,
			MiniMock:  fmt.Sprintf("Practice %s question", category),
			QuickTest: fmt.Sprintf("Complete %s exercise", category),
		})
	}
	return steps
}

func pickStr(level model.Level, lo, hi string) string {
	if level == model.LevelJunior {
		return lo
	}
	return hi
}

func capSteps(steps []model.PlanStep, numDays int) []model.PlanStep {
	if len(steps) > numDays {
		return steps[:numDays]
	}
	return steps
}

// titleFromTag turns the last dot segment of a tag into a title,
// e.g. "backend.message_queues" -> "Message Queues".
func titleFromTag(skillTag string) string {
	parts := strings.Split(skillTag, ".")
	last := parts[len(parts)-1]
	words := strings.Split(strings.ReplaceAll(last, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
