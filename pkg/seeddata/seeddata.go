// Package seeddata holds the compiled-in default content written to an empty
// store on first start and used whenever the store cannot be reached.
package seeddata

import "github.com/colorbulb/nexteliteweb2/pkg/models"

// Dataset is a complete set of site content.
type Dataset struct {
	Courses      []models.Course
	BlogPosts    []models.BlogPost
	Team         []models.TeamMember
	Testimonials []models.Testimonial
	SocialFeed   []models.SocialFeedItem
	Settings     models.Settings
	PageContent  models.PageContent
}

// Default returns a fresh copy of the bundled dataset. Callers may mutate it.
func Default() Dataset {
	return Dataset{
		Courses:      courses(),
		BlogPosts:    blogPosts(),
		Team:         team(),
		Testimonials: testimonials(),
		SocialFeed:   socialFeed(),
		Settings:     settings(),
		PageContent:  pageContent(),
	}
}

func courses() []models.Course {
	return []models.Course{
		{
			ID:               "logic-101",
			Title:            "Foundations of Logic",
			Category:         "Logic",
			ShortDescription: "Master the art of reasoning and critical thinking.",
			FullDescription:  "This course introduces students to formal and informal logic. We cover fallacies, syllogisms, and how to construct sound arguments. Essential for any student wanting to improve their analytical skills.",
			Instructor:       "Dr. Sarah Bennett",
			Duration:         "10 Weeks",
			Level:            "Middle School",
			Image:            "https://picsum.photos/800/600?random=1",
			Syllabus:         []string{"Introduction to Arguments", "Identifying Fallacies", "Deductive vs Inductive Reasoning", "Symbolic Logic Basics", "Applied Critical Thinking"},
			Preview: &models.Preview{
				Title:       "Test Your Logical Intuition",
				Description: "Take this quick 3-question quiz to see if you can spot the logical fallacies in these common arguments.",
				Body: models.QuizPreview{Questions: []models.QuizQuestion{
					{
						Question:      `"If it rains, the ground is wet. The ground is wet, therefore it rained." What type of fallacy is this?`,
						Options:       []string{"Ad Hominem", "Affirming the Consequent", "Straw Man", "No Fallacy"},
						CorrectAnswer: 1,
					},
					{
						Question:      "Which of the following is an example of an Ad Hominem attack?",
						Options:       []string{`"You are wrong because your logic is flawed."`, `"You are wrong because you are smelly."`, `"You are wrong because the data says otherwise."`, `"You are wrong because of gravity."`},
						CorrectAnswer: 1,
					},
					{
						Question:      "In a valid deductive argument, if the premises are true, the conclusion must be...",
						Options:       []string{"Probably true", "False", "True", "Unknown"},
						CorrectAnswer: 2,
					},
				}},
			},
		},
		{
			ID:               "debate-adv",
			Title:            "Competitive Debate",
			Category:         "Debate",
			ShortDescription: "Build confidence and public speaking skills through structured debate.",
			FullDescription:  "Our Competitive Debate program prepares high school students for tournaments. We focus on Policy, Lincoln-Douglas, and Public Forum formats. Students learn research, speechwriting, and rebuttal techniques.",
			Instructor:       "Mark Davidson",
			Duration:         "12 Weeks",
			Level:            "High School",
			Image:            "https://picsum.photos/800/600?random=2",
			Syllabus:         []string{"Public Speaking Fundamentals", "Research Methods", "Constructing Case Files", "Cross-Examination Skills", "Tournament Strategies"},
			Preview: &models.Preview{
				Title:       "Watch a Championship Round",
				Description: "Observe our students in action during the 2023 Regional Finals. Notice the structure of the rebuttal.",
				Body:        models.VideoPreview{URL: "https://www.youtube.com/embed/dQw4w9WgXcQ"},
			},
		},
		{
			ID:               "english-lit",
			Title:            "Advanced English & Comp",
			Category:         "English",
			ShortDescription: "Elevate your writing and reading comprehension.",
			FullDescription:  "A comprehensive course designed to improve essay writing, literary analysis, and vocabulary. Perfect for preparing for college admissions and standardized tests.",
			Instructor:       "Emily Thorne",
			Duration:         "Semester",
			Level:            "High School",
			Image:            "https://picsum.photos/800/600?random=3",
			Syllabus:         []string{"Essay Structure Mastery", "Literary Analysis", "Advanced Grammar & Style", "Creative Writing Workshop", "Standardized Test Prep"},
			Preview: &models.Preview{
				Title:       "Sample Lesson Plan: The Great Gatsby",
				Description: "Download a sample lesson plan and worksheet used in our 4th week of class focusing on symbolism.",
				Body:        models.DocumentPreview{URL: "#"},
			},
		},
		{
			ID:               "ai-intro",
			Title:            "Intro to AI & Python",
			Category:         "AI",
			ShortDescription: "Understand the future with hands-on coding and AI concepts.",
			FullDescription:  "Demystify Artificial Intelligence. Students will learn the basics of Python programming and explore how machine learning models work. We discuss ethics, neural networks, and build simple bots.",
			Instructor:       "James Chen",
			Duration:         "8 Weeks",
			Level:            "All Levels",
			Image:            "https://picsum.photos/800/600?random=4",
			Syllabus:         []string{"Python Basics", "Data Structures", "What is Machine Learning?", "Ethics in AI", "Building a Chatbot"},
			Preview: &models.Preview{
				Title:       "AI Concepts Check",
				Description: "Do you know the difference between Narrow AI and General AI? Test your knowledge.",
				Body: models.QuizPreview{Questions: []models.QuizQuestion{
					{
						Question:      "What language is primarily used for AI development?",
						Options:       []string{"HTML", "Python", "CSS", "SQL"},
						CorrectAnswer: 1,
					},
					{
						Question:      "What is a Neural Network modeled after?",
						Options:       []string{"The Human Brain", "A Spider Web", "Computer Chips", "Road Maps"},
						CorrectAnswer: 0,
					},
				}},
			},
		},
	}
}

func team() []models.TeamMember {
	return []models.TeamMember{
		{ID: "1", Name: "Dr. Alan Grant", Role: "Head of Academics", Bio: "Former university professor with 20 years of experience in curriculum development.", Image: "https://picsum.photos/300/300?random=10"},
		{ID: "2", Name: "Sarah Connor", Role: "Lead AI Instructor", Bio: "Software engineer turned educator, passionate about teaching the next gen of coders.", Image: "https://picsum.photos/300/300?random=11"},
		{ID: "3", Name: "Logain Ablar", Role: "Debate Coach", Bio: "National debate champion helping students find their voice.", Image: "https://picsum.photos/300/300?random=12"},
	}
}

func testimonials() []models.Testimonial {
	return []models.Testimonial{
		{ID: "1", Name: "Michael B.", Role: "High School Student", Quote: "The Logic course completely changed how I approach my other subjects. I feel much more confident in my arguments now."},
		{ID: "2", Name: "Linda K.", Role: "Parent", Quote: "Nexus Academy has been wonderful for my daughter. Her English grades improved significantly after just one term."},
	}
}

func blogPosts() []models.BlogPost {
	return []models.BlogPost{
		{
			ID:      "1",
			Title:   "Why Logic Should Be Taught in Middle School",
			Excerpt: "Critical thinking is not innate; it is a learned skill. Discover why starting early gives students a massive advantage.",
			Content: `<p class="mb-4">In an age of information overload, the ability to discern truth from falsehood is more critical than ever. Yet, formal logic, the very framework of valid reasoning, is rarely taught in schools before the university level.</p>
<p class="mb-4">At Nexus Academy, we believe middle school is the perfect time to introduce these concepts. Students at this age are beginning to question authority and the world around them. Giving them the tools to structure these questions constructively builds confidence and intellectual independence.</p>
<h3 class="text-xl font-bold mb-2">The Benefits of Early Logic Education</h3>
<ul class="list-disc pl-5 mb-4 space-y-2">
  <li><strong>Improved Math Skills:</strong> Logic is the foundation of mathematical proof.</li>
  <li><strong>Better Writing:</strong> Structured thinking leads to structured essays.</li>
  <li><strong>Conflict Resolution:</strong> Understanding fallacies helps de-escalate emotional arguments.</li>
</ul>
<p>By integrating logic into our core curriculum, we aren't just teaching students what to think, but how to think.</p>`,
			Author:   "Dr. Alan Grant",
			Date:     "October 15, 2023",
			Image:    "https://picsum.photos/800/400?random=50",
			Category: "Education",
		},
		{
			ID:      "2",
			Title:   "The Future of AI in the Classroom",
			Excerpt: "AI is not here to replace teachers, but to augment them. How we are using tools like ChatGPT to enhance learning.",
			Content: `<p class="mb-4">Artificial Intelligence is transforming every industry, and education is no exception. While some schools are banning AI tools, we are embracing them as essential instruments for the future.</p>
<p class="mb-4">Our approach is "AI Literacy." We teach students not just how to use prompts, but how the underlying models work, their limitations, and the ethical considerations of using them.</p>
<h3 class="text-xl font-bold mb-2">Practical Applications</h3>
<p class="mb-4">In our coding classes, AI acts as a pair programmer, helping students debug code in real-time. In English, we use it to generate counter-arguments for debate practice, allowing students to sharpen their rebuttal skills against a tireless opponent.</p>
<p>The future belongs to those who can collaborate with machines, not those who compete against them.</p>`,
			Author:   "Sarah Connor",
			Date:     "November 2, 2023",
			Image:    "https://picsum.photos/800/400?random=51",
			Category: "Technology",
		},
		{
			ID:      "3",
			Title:   "Top 5 Public Speaking Tips for Introverts",
			Excerpt: "Debate isn't just for the loud. Learn how quiet confidence can often be the most persuasive tool in the room.",
			Content: `<p class="mb-4">Public speaking is often cited as a top fear, especially for introverted students. However, introverts often make the best debaters because they are naturally inclined to listen and analyze before they speak.</p>
<p class="mb-4">Here are our top tips for introverted speakers:</p>
<ol class="list-decimal pl-5 mb-4 space-y-2">
  <li><strong>Preparation is Key:</strong> Anxiety often comes from the unknown. Knowing your material inside out reduces fear.</li>
  <li><strong>Focus on the Message:</strong> Shift your attention from "how do I look?" to "what value am I giving the audience?"</li>
  <li><strong>Use Silence:</strong> A well-placed pause is more powerful than a shout.</li>
  <li><strong>Practice in Low-Stakes Environments:</strong> Start with small groups before moving to the stage.</li>
  <li><strong>Be Yourself:</strong> Authenticity resonates more than forced enthusiasm.</li>
</ol>`,
			Author:   "Logain Ablar",
			Date:     "November 20, 2023",
			Image:    "https://picsum.photos/800/400?random=52",
			Category: "Tips & Tricks",
		},
	}
}

func socialFeed() []models.SocialFeedItem {
	return []models.SocialFeedItem{
		{ID: "1", Platform: models.PlatformInstagram, Image: "https://picsum.photos/400/400?random=90", Caption: "Student debate finals! #NexusElite", Likes: 120},
		{ID: "2", Platform: models.PlatformInstagram, Image: "https://picsum.photos/400/400?random=91", Caption: "Coding class in session. #AI #Python", Likes: 89},
		{ID: "3", Platform: models.PlatformInstagram, Image: "https://picsum.photos/400/400?random=92", Caption: "Congratulations to our graduates!", Likes: 230},
		{ID: "4", Platform: models.PlatformFacebook, Image: "https://picsum.photos/400/400?random=93", Caption: "New semester enrollments are open.", Likes: 45},
	}
}

func settings() models.Settings {
	return models.Settings{
		FacebookURL:  "https://facebook.com",
		TwitterURL:   "https://twitter.com",
		InstagramURL: "https://instagram.com",
		LinkedinURL:  "https://linkedin.com",
		Phone:        "(555) 123-4567",
		Email:        "info@nexuselite.edu",
	}
}

func pageContent() models.PageContent {
	return models.PageContent{
		"home": {
			"heroTitle":         "Sharpen Your Mind.\nMaster the Futures.",
			"heroSubtitle":      "Join the premier academy for Logic, Competitive Debate, and Artificial Intelligence. We don't just teach subjects; we build intellectual capacity.",
			"ctaButton":         "Explore Curriculum",
			"methodologyButton": "Our Methodology",
			"stats1":            "98%",
			"stats1Label":       "College Acceptance",
			"stats2":            "15+",
			"stats2Label":       "Years Experience",
			"stats3":            "500+",
			"stats3Label":       "Debate Awards",
			"stats4":            "12:1",
			"stats4Label":       "Student Ratio",
			"disciplinesTitle":  "Core Disciplines",
			"disciplinesText":   "Our curriculum is rigorously designed to develop the 'Meta-Skills' required for high-level success in any field.",
			"featuredTitle":     "Featured Programs",
			"testimonialsTitle": "Student Success Stories",
			"ctaTitle":          "Invest in Excellence",
			"ctaText":           "Seats are limited for the upcoming semester. Secure your place in our elite programs today.",
		},
		"about": {
			"title":        "About Nexus Elite",
			"subtitle":     "We are a collective of educators, industry experts, and mentors dedicated to cultivating the next generation of intellectual leaders.",
			"missionTitle": "Education for the Intelligence Age",
			"missionText1": "The traditional school system was designed for the industrial age. Nexus Elite Academy is designed for the Intelligence Age.",
			"missionText2": "We focus on 'Meta-Skills', the ability to think clearly (Logic), communicate persuasively (Debate), and leverage technology (AI). These are the force multipliers that allow students to excel in any future career.",
			"facultyTitle": "World-Class Faculty",
			"facultyText":  "Our instructors include university professors, national debate champions, and software engineers from top tech firms.",
		},
		"contact": {
			"title":    "Get in Touch",
			"subtitle": "Have specific questions about our curriculum or admissions process? Our team is ready to assist you.",
		},
	}
}
