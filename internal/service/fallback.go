package service

import (
	"fmt"
	"strings"
)

// Canned replies used when the assistant backend cannot answer. The
// template is chosen from keywords in the lowercased prompt.

const explainFallback = `Let me explain %[1]s in simple terms:

%[1]s is a fundamental concept in programming and web development. It's essential for building modern applications and understanding how different technologies work together.

Key points to remember:
• Start with the basics and build your understanding gradually
• Practice with hands-on examples
• Don't hesitate to ask questions when you get stuck
• Join community forums for additional support

Would you like me to break down any specific aspect of %[1]s?`

const resourcesFallback = `Here are some helpful learning resources:

📚 **Official Documentation**
• Check the official docs for the most up-to-date information
• Look for getting started guides and tutorials

🎥 **Video Tutorials**
• YouTube has many free, high-quality tutorials
• Look for channels with good ratings and recent uploads

💻 **Practice Projects**
• Start with simple projects and gradually increase complexity
• Build real-world applications to apply your knowledge

👥 **Community Support**
• Stack Overflow for specific questions
• Reddit communities for discussions
• Discord/Slack channels for real-time help

Would you like me to suggest specific resources for any particular topic?`

const troubleshootFallback = `It's completely normal to encounter problems while learning! Here are some strategies that usually help:

🔍 **Debugging Steps**
• Read error messages carefully - they often point to the solution
• Check your code for typos and syntax errors
• Use console.log() to track variable values

🛠️ **Problem-Solving Approach**
• Break the problem into smaller parts
• Search for similar issues online
• Ask specific questions in community forums
• Take breaks - sometimes fresh eyes help!

📖 **Learning Resources**
• Review the documentation
• Look for examples in the official guides
• Practice with simpler versions first

What specific problem are you facing? I'd be happy to help you work through it step by step.`

const genericFallback = `I understand you're asking about "%s". That's a great question! While I can provide general guidance, here are some ways to get the most helpful information:

• Check the official documentation for detailed explanations
• Look for tutorials and examples online
• Practice with hands-on exercises
• Join community discussions for real-world insights
• Don't hesitate to ask specific questions - the more detailed, the better!

Is there a particular aspect of this topic you'd like me to help clarify?`

func fallbackReply(prompt, topic string) string {
	input := strings.ToLower(prompt)
	switch {
	case strings.Contains(input, "explain") && topic != "":
		return fmt.Sprintf(explainFallback, topic)
	case containsAny(input, "resources", "help"):
		return resourcesFallback
	case containsAny(input, "problem", "error", "stuck"):
		return troubleshootFallback
	default:
		return fmt.Sprintf(genericFallback, prompt)
	}
}
