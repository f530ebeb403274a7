package design

// analysisPrompt is the template for the project-analysis call. Verb args:
// project idea, target audience, timeline.
const analysisPrompt = `Analyze this project idea and create a comprehensive project analysis:

PROJECT: %s
TARGET AUDIENCE: %s
TIMELINE: %s

Provide a detailed analysis covering:

1. PROJECT TYPE CLASSIFICATION:
   - Is this a game, web application, mobile app, AI tool, or other?
   - What are the core functional requirements?
   - What are the technical requirements?

2. TECHNOLOGY STACK RECOMMENDATION:
   - What technologies are most appropriate?
   - Front-end requirements (HTML5 Canvas, React, Unity, etc.)
   - Back-end requirements (if any)
   - Database requirements (if any)
   - Third-party services needed

3. DEVELOPMENT APPROACH:
   - Should this be built as a single HTML file, multi-file project, or complex application?
   - What are the main development phases?
   - What are the critical features vs nice-to-have features?

4. SPECIFIC REQUIREMENTS:
   - For games: Game loop, rendering, input handling, collision detection, scoring, levels
   - For web apps: Database design, API endpoints, authentication, UI components
   - For mobile apps: Platform requirements, native features, offline capability
   - For AI tools: Model requirements, data processing, user interface

5. RECOMMENDED TASK BREAKDOWN:
   - What specific development tasks should be created?
   - What order should tasks be completed in?
   - What are the deliverables for each task?
   - What testing and validation is needed?

6. POTENTIAL CHALLENGES:
   - What technical challenges might arise?
   - What are the common pitfalls for this type of project?
   - What should be prioritized to ensure a working result?

Format your response as a detailed analysis that will guide task creation.`

// taskGenerationPrompt is the template for the task-generation call. Verb
// args: analysis text, project idea.
const taskGenerationPrompt = `Based on this project analysis, create specific development tasks:

ANALYSIS RESULTS:
%s

PROJECT: %s

Create a detailed list of development tasks that will result in a WORKING implementation.
Each task should be:
- Specific and actionable
- Focused on creating working code/features
- Appropriate for the project type identified in the analysis
- Designed to produce testable deliverables

For each task, provide:
1. TASK NAME: Clear, descriptive name
2. DESCRIPTION: Detailed description of what needs to be built
3. EXPECTED OUTPUT: Specific deliverable (working file, component, feature)
4. SUCCESS CRITERIA: How to verify the task is complete and working
5. DEPENDENCIES: What other tasks must be completed first
6. ESTIMATED COMPLEXITY: Simple/Medium/Complex

CRITICAL TESTING PATTERNS BY PROJECT TYPE:

FOR GAMES - Always include these validation tasks:
- "Game State Management Testing": Pause/resume/restart functionality, memory leak prevention (cleanup intervals/requestAnimationFrame), browser tab focus/blur handling
- "Audio System Validation": Sound lifecycle testing, mobile browser compatibility, audioContext.resume() on ALL interactions, multiple sound overlap handling
- "Input System Reliability": Keyboard cleanup, simultaneous key presses, mobile touch, prevent browser defaults (arrow keys scrolling)
- "Performance & Rendering": Canvas clearing, animation cleanup, mobile device performance, rendering degradation over time
- "Cross-Browser Game Testing": Different browsers, mobile devices, full-screen functionality

FOR WEB APPS/SaaS - Always include these validation tasks:
- "Form & Data Integrity Testing": Client+server validation, CRUD operations, data persistence, XSS prevention, input sanitization
- "Authentication Flow Testing": Login/logout completeness, session timeout, protected routes, CSRF protection
- "API Integration Robustness": Network failure handling, rate limiting, loading states, timeout handling, error user feedback
- "Responsive & Accessibility Testing": Mobile/tablet/desktop layouts, keyboard navigation, screen reader compatibility, loading indicators
- "Security Validation": Input sanitization, authentication bypass attempts, data exposure prevention

FOR MOBILE APPS - Always include these validation tasks:
- "Touch & Gesture Testing": Tap/swipe/pinch/long press, orientation changes, screen sizes, touch conflicts with browser gestures
- "Device Integration Testing": Camera/GPS/sensors, offline functionality, app lifecycle, platform-specific behaviors
- "Mobile Performance Testing": Battery usage, lower-end device performance, network connectivity changes
- "Platform Compatibility": iOS Safari quirks, Android Chrome differences, PWA functionality

FOR AI TOOLS - Always include these validation tasks:
- "AI Integration Reliability": API failure handling, fallback mechanisms, rate limiting, quota management
- "Data Processing Pipeline": Input validation, preprocessing, output formatting, large input handling, error recovery
- "User Experience Flow": Real-time vs batch processing, progress indicators, user feedback during processing
- "AI Service Testing": Model loading, initialization, versioning, timeout handling

UNIVERSAL QUALITY CHECKLIST - Always include these for ALL project types:
- "Cross-Browser Compatibility Testing": Chrome, Firefox, Safari, Edge testing
- "Performance Optimization": Loading speed, memory usage, responsiveness under load
- "Error Handling & User Feedback": Graceful error handling, informative error messages, loading states
- "Code Quality & Maintainability": Clean code structure, commented critical sections, consistent patterns
- "Final Integration Testing": End-to-end user workflows, edge case handling, production readiness

Ensure tasks will result in a WORKING, TESTABLE implementation that matches the project requirements.

Format as a JSON array of task objects with fields: name, description, expected_output, success_criteria, dependencies, estimated_complexity.`
