package catalog

import "github.com/abhisek/quizdeck/internal/quiz"

// Built-in course and lesson IDs referenced by tests and the CLI.
const (
	CourseJavaScript    = "javascript-fundamentals"
	CourseReact         = "react-development"
	CourseDataScience   = "data-science-basics"
	CourseDigitalMarket = "digital-marketing"

	LessonJSVariables = "js-variables"
)

func seedCourses() []Course {
	return []Course{
		javascriptCourse(),
		reactCourse(),
		dataScienceCourse(),
		marketingCourse(),
	}
}

func javascriptCourse() Course {
	return Course{
		ID:          CourseJavaScript,
		Title:       "JavaScript Fundamentals",
		Instructor:  "Sarah Johnson",
		Category:    "Programming",
		Level:       LevelBeginner,
		Description: "Master the basics of JavaScript programming with hands-on exercises.",
		Lessons: []Lesson{
			{
				ID:          LessonJSVariables,
				Title:       "Introduction to Variables",
				Duration:    "8:32",
				VideoURL:    "https://youtu.be/7xStNKTM3bE",
				Description: "Declaring and naming values with var, let and const.",
				Questions: []quiz.Question{
					{
						ID:     1,
						Prompt: "What is the correct way to declare a variable in JavaScript?",
						Options: []string{
							"var myVariable = 'Hello';",
							"variable myVariable = 'Hello';",
							"v myVariable = 'Hello';",
							"declare myVariable = 'Hello';",
						},
						CorrectIndex: 0,
						Explanation:  "The 'var' keyword is used to declare variables in JavaScript. You can also use 'let' or 'const' in modern JavaScript.",
					},
					{
						ID:           2,
						Prompt:       "Which of these is NOT a valid JavaScript data type?",
						Options:      []string{"string", "number", "boolean", "character"},
						CorrectIndex: 3,
						Explanation:  "JavaScript has string, number, boolean, object, undefined, and null data types, but not a specific 'character' type.",
					},
					{
						ID:           3,
						Prompt:       "What will console.log(typeof 42) output?",
						Options:      []string{"integer", "number", "float", "numeric"},
						CorrectIndex: 1,
						Explanation:  "In JavaScript, all numbers are of type 'number', whether they are integers or floating-point numbers.",
					},
				},
			},
			{
				ID:          "js-functions",
				Title:       "Functions and Scope",
				Duration:    "12:45",
				VideoURL:    "https://youtu.be/9ae4-qniqZk",
				Description: "Function declarations, arrow functions and lexical scope.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "Which keyword declares a block-scoped variable that can be reassigned?",
						Options:      []string{"var", "let", "const", "static"},
						CorrectIndex: 1,
						Explanation:  "'let' is block-scoped and reassignable. 'const' is block-scoped but cannot be reassigned.",
					},
					{
						ID:           2,
						Prompt:       "What does a function return when it has no return statement?",
						Options:      []string{"null", "0", "undefined", "an empty object"},
						CorrectIndex: 2,
						Explanation:  "A function without an explicit return value returns undefined.",
					},
					{
						ID:           3,
						Prompt:       "Which syntax defines an arrow function?",
						Options:      []string{"function => (x) { }", "(x) => x * 2", "x -> x * 2", "lambda x: x * 2"},
						CorrectIndex: 1,
						Explanation:  "Arrow functions use a parameter list followed by '=>' and a body.",
					},
				},
			},
			{
				ID:          "js-arrays-objects",
				Title:       "Arrays and Objects",
				Duration:    "15:20",
				VideoURL:    "https://youtu.be/w9078dAjcrY",
				Description: "Working with collections and key-value data.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "Which method adds an element to the end of an array?",
						Options:      []string{"push()", "shift()", "unshift()", "pop()"},
						CorrectIndex: 0,
						Explanation:  "push() appends elements to the end of an array and returns the new length.",
					},
					{
						ID:           2,
						Prompt:       "How do you read the property 'name' of an object user?",
						Options:      []string{"user->name", "user::name", "user.name", "user#name"},
						CorrectIndex: 2,
						Explanation:  "Dot notation (user.name) or bracket notation (user['name']) reads object properties.",
					},
				},
			},
			{
				ID:          "js-dom",
				Title:       "DOM Manipulation",
				Duration:    "18:15",
				VideoURL:    "https://youtu.be/WjxQRfZfZnw",
				Description: "Selecting elements and reacting to events in the browser.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "Which method returns the first element matching a CSS selector?",
						Options:      []string{"document.getElementsByClassName()", "document.querySelector()", "document.findElement()", "document.select()"},
						CorrectIndex: 1,
						Explanation:  "querySelector() returns the first element that matches the given selector, or null.",
					},
					{
						ID:           2,
						Prompt:       "Which method attaches an event handler to an element?",
						Options:      []string{"addEventListener()", "onEvent()", "attach()", "listen()"},
						CorrectIndex: 0,
						Explanation:  "addEventListener() registers a handler for a named event on the element.",
					},
				},
			},
		},
	}
}

func reactCourse() Course {
	return Course{
		ID:          CourseReact,
		Title:       "React Development",
		Instructor:  "Mike Chen",
		Category:    "Programming",
		Level:       LevelIntermediate,
		Description: "Build modern web applications with React and its ecosystem.",
		Lessons: []Lesson{
			{
				ID:          "react-components",
				Title:       "Components and JSX",
				Duration:    "10:05",
				Description: "Describing UI as a tree of components.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "What must a React component name start with?",
						Options:      []string{"A lowercase letter", "An uppercase letter", "An underscore", "The word 'use'"},
						CorrectIndex: 1,
						Explanation:  "JSX treats lowercase tags as DOM elements, so components must be capitalised.",
					},
					{
						ID:           2,
						Prompt:       "How are data passed from a parent to a child component?",
						Options:      []string{"props", "state", "context only", "refs"},
						CorrectIndex: 0,
						Explanation:  "Props are the inputs a parent passes down to a child component.",
					},
				},
			},
			{
				ID:          "react-state",
				Title:       "State and Hooks",
				Duration:    "14:30",
				Description: "useState, useEffect and the rules of hooks.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "Which hook adds local state to a function component?",
						Options:      []string{"useEffect", "useMemo", "useState", "useRef"},
						CorrectIndex: 2,
						Explanation:  "useState returns the current value and a setter that triggers a re-render.",
					},
					{
						ID:           2,
						Prompt:       "When does an effect with an empty dependency array run?",
						Options:      []string{"On every render", "Once after the first render", "Never", "Only on unmount"},
						CorrectIndex: 1,
						Explanation:  "An empty dependency array means the effect runs after mount and cleans up on unmount.",
					},
					{
						ID:           3,
						Prompt:       "Where may hooks be called?",
						Options:      []string{"Inside loops", "Inside conditions", "At the top level of a component", "Inside class methods"},
						CorrectIndex: 2,
						Explanation:  "Hooks must be called in the same order on every render, so only at the top level.",
					},
				},
			},
			{
				ID:          "react-routing",
				Title:       "Routing",
				Duration:    "11:40",
				Description: "Mapping URLs to views.",
			},
		},
	}
}

func dataScienceCourse() Course {
	return Course{
		ID:          CourseDataScience,
		Title:       "Data Science Basics",
		Instructor:  "Dr. Emily Rodriguez",
		Category:    "Data Science",
		Level:       LevelBeginner,
		Description: "Introduction to data analysis, visualization, and machine learning.",
		Lessons: []Lesson{
			{
				ID:          "ds-statistics",
				Title:       "Descriptive Statistics",
				Duration:    "16:10",
				Description: "Summarising a dataset with centre and spread.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "Which measure is least affected by outliers?",
						Options:      []string{"Mean", "Median", "Range", "Standard deviation"},
						CorrectIndex: 1,
						Explanation:  "The median depends only on the middle value, so extreme values barely move it.",
					},
					{
						ID:           2,
						Prompt:       "What is the mean of 2, 4 and 9?",
						Options:      []string{"4", "5", "6", "15"},
						CorrectIndex: 1,
						Explanation:  "(2 + 4 + 9) / 3 = 5.",
					},
				},
			},
			{
				ID:          "ds-visualization",
				Title:       "Visualizing Data",
				Duration:    "13:55",
				Description: "Choosing the right chart for the question.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "Which chart best shows the distribution of a single numeric variable?",
						Options:      []string{"Pie chart", "Histogram", "Line chart", "Scatter plot"},
						CorrectIndex: 1,
						Explanation:  "A histogram bins values to show how they are distributed.",
					},
					{
						ID:           2,
						Prompt:       "Which chart shows the relationship between two numeric variables?",
						Options:      []string{"Bar chart", "Scatter plot", "Pie chart", "Box plot"},
						CorrectIndex: 1,
						Explanation:  "Scatter plots place one variable on each axis to reveal correlation.",
					},
				},
			},
			{
				ID:          "ds-ml-intro",
				Title:       "What is Machine Learning?",
				Duration:    "19:00",
				Description: "Supervised and unsupervised learning at a glance.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "Predicting house prices from labelled examples is an example of:",
						Options:      []string{"Unsupervised learning", "Reinforcement learning", "Supervised learning", "Clustering"},
						CorrectIndex: 2,
						Explanation:  "Learning a mapping from labelled inputs to outputs is supervised learning.",
					},
					{
						ID:           2,
						Prompt:       "Why is data split into training and test sets?",
						Options:      []string{"To train faster", "To estimate performance on unseen data", "To reduce memory use", "To remove outliers"},
						CorrectIndex: 1,
						Explanation:  "A held-out test set measures how well the model generalises.",
					},
				},
			},
		},
	}
}

func marketingCourse() Course {
	return Course{
		ID:          CourseDigitalMarket,
		Title:       "Digital Marketing",
		Instructor:  "Alex Thompson",
		Category:    "Marketing",
		Level:       LevelBeginner,
		Description: "Learn modern digital marketing strategies and tools.",
		Lessons: []Lesson{
			{
				ID:          "dm-seo",
				Title:       "Search Engine Optimization",
				Duration:    "12:20",
				Description: "How search engines rank pages.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "What does SEO stand for?",
						Options:      []string{"Search Engine Optimization", "Site Engagement Operations", "Social Engine Outreach", "Search Entry Order"},
						CorrectIndex: 0,
						Explanation:  "SEO is the practice of improving a page's visibility in organic search results.",
					},
					{
						ID:           2,
						Prompt:       "Which HTML element most directly sets the title shown in search results?",
						Options:      []string{"<h6>", "<title>", "<footer>", "<span>"},
						CorrectIndex: 1,
						Explanation:  "Search engines usually display the page's <title> as the result headline.",
					},
				},
			},
			{
				ID:          "dm-email",
				Title:       "Email Campaigns",
				Duration:    "9:45",
				Description: "Building and measuring an email list.",
				Questions: []quiz.Question{
					{
						ID:           1,
						Prompt:       "Open rate measures the share of recipients who:",
						Options:      []string{"Unsubscribed", "Opened the email", "Clicked a link", "Bought something"},
						CorrectIndex: 1,
						Explanation:  "Open rate is opens divided by delivered emails.",
					},
					{
						ID:           2,
						Prompt:       "What is an A/B test?",
						Options:      []string{"Sending the same email twice", "Comparing two variants on split audiences", "Testing spam filters", "Auditing a mailing list"},
						CorrectIndex: 1,
						Explanation:  "An A/B test sends two variants to comparable groups and compares results.",
					},
				},
			},
		},
	}
}
