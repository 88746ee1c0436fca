package dataset

import (
	"fmt"

	"github.com/rushteam/matchkit/core"
)

// SampleServices 返回内置示例目录：50 条确定性记录，覆盖全部业务类型、
// 价格档位、语言与主要区域。用于演示、测试与数据源缺失时的兜底。
func SampleServices() []core.Service {
	names := []string{
		// Technology (15)
		"Professional Web Design", "Mobile App Development", "Cloud Hosting Pro",
		"AI Chatbot Development", "Website Maintenance", "Custom Software Development",
		"Database Management", "API Integration Services", "UI/UX Design Studio",
		"DevOps Consulting", "Tech Support 24/7", "Code Review Service",
		"System Migration Services", "IT Infrastructure Setup", "Cybersecurity Audit",
		// Retail (15)
		"Digital Marketing Suite", "SEO Optimization Pro", "E-commerce Platform",
		"Social Media Management", "Content Writing Services", "Brand Strategy Consulting",
		"Product Photography", "Email Marketing Automation", "Market Research Analysis",
		"Customer Analytics Dashboard", "Inventory Management System", "POS System Integration",
		"Retail Analytics Software", "Customer Loyalty Program", "Online Store Setup",
		// Finance (10)
		"Business Analytics Dashboard", "Payment Gateway Integration", "Accounting Software",
		"Financial Planning Tools", "Tax Compliance Software", "Invoice Management System",
		"Expense Tracking App", "Payroll Management", "Investment Portfolio Tracker",
		"Credit Score Analysis",
		// Healthcare (5)
		"Patient Management System", "Telemedicine Platform", "Medical Records Software",
		"Appointment Scheduling App", "Health Analytics Dashboard",
		// Education (5)
		"Learning Management System", "Online Course Platform", "Student Portal Development",
		"Virtual Classroom Software", "Education Analytics Tools",
	}

	businessTypes := make([]string, 0, len(names))
	for _, group := range []struct {
		value string
		count int
	}{
		{"Technology", 15}, {"Retail", 15}, {"Finance", 10}, {"Healthcare", 5}, {"Education", 5},
	} {
		for i := 0; i < group.count; i++ {
			businessTypes = append(businessTypes, group.value)
		}
	}

	prices := []string{
		"Low", "High", "Low", "High", "Low", "High", "Medium", "Medium", "High", "High",
		"Low", "Medium", "High", "Medium", "High",
		"Medium", "Medium", "High", "Medium", "Low", "High", "Medium", "Medium", "Low", "Medium",
		"High", "Medium", "High", "Low", "Medium",
		"Medium", "Low", "High", "High", "Medium", "Medium", "Low", "High", "High", "Medium",
		"High", "High", "High", "Medium", "High",
		"Medium", "High", "Medium", "Medium", "High",
	}

	languages := []string{
		"Both", "English", "Both", "English", "Both", "English", "Both", "English", "English", "Both",
		"Both", "English", "Both", "Both", "English",
		"Both", "Hindi", "English", "Both", "Both", "English", "Both", "English", "Hindi", "Both",
		"English", "Both", "English", "Both", "Both",
		"Both", "Both", "English", "English", "Both", "Both", "Both", "English", "English", "Both",
		"Both", "Both", "English", "Both", "English",
		"Both", "English", "Both", "Both", "English",
	}

	locations := []string{
		"Mumbai", "Delhi", "Remote", "Bangalore", "Mumbai", "Remote", "Delhi", "Remote", "Bangalore", "Mumbai",
		"Remote", "Delhi", "Bangalore", "Mumbai", "Remote",
		"Remote", "Mumbai", "Delhi", "Remote", "Bangalore", "Mumbai", "Delhi", "Remote", "Mumbai", "Remote",
		"Bangalore", "Delhi", "Remote", "Mumbai", "Remote",
		"Mumbai", "Mumbai", "Remote", "Delhi", "Remote", "Mumbai", "Remote", "Bangalore", "Remote", "Delhi",
		"Mumbai", "Delhi", "Bangalore", "Mumbai", "Remote",
		"Remote", "Remote", "Mumbai", "Remote", "Bangalore",
	}

	descriptions := []string{
		// Technology (15)
		"Modern web design services with responsive layouts and SEO optimization",
		"Custom iOS and Android app development with cloud integration",
		"Scalable cloud hosting solutions with 99.9% uptime guarantee",
		"AI-powered chatbot development for customer service automation",
		"Comprehensive website maintenance and security updates",
		"Tailored software solutions for enterprise business needs",
		"Professional database design, optimization and management services",
		"Seamless API integration for third-party services and platforms",
		"User-centered design services with modern aesthetics",
		"DevOps consulting for continuous integration and deployment",
		"Round-the-clock technical support for your IT infrastructure",
		"Professional code review and quality assurance services",
		"Smooth system migration with zero downtime guarantee",
		"Complete IT infrastructure planning and implementation",
		"Comprehensive security audits and vulnerability assessments",
		// Retail (15)
		"Full-service digital marketing including SEO, PPC, and social media",
		"Advanced SEO services to boost organic traffic and rankings",
		"Complete e-commerce platform with payment and shipping integration",
		"Strategic social media management across all major platforms",
		"Professional content creation for blogs, websites and marketing",
		"Strategic brand development and positioning services",
		"Professional product photography and image editing",
		"Automated email marketing campaigns with analytics",
		"In-depth market research and competitive analysis",
		"Customer behavior analytics and insights dashboard",
		"Cloud-based inventory tracking and management system",
		"Modern POS system integration for retail businesses",
		"Comprehensive retail analytics and reporting tools",
		"Customer loyalty and rewards program development",
		"Complete online store setup with marketing integration",
		// Finance (10)
		"Interactive business analytics dashboards with real-time data",
		"Secure payment processing integration for online businesses",
		"Cloud-based accounting software for small businesses",
		"Comprehensive financial planning and forecasting tools",
		"Automated tax compliance and filing software",
		"Smart invoice generation and payment tracking system",
		"Expense tracking app with receipt scanning",
		"Complete payroll management with tax calculations",
		"Investment portfolio tracking and analysis tools",
		"Credit score monitoring and improvement recommendations",
		// Healthcare (5)
		"Complete patient management and EMR system",
		"HIPAA-compliant telemedicine platform with video consultations",
		"Secure electronic medical records management system",
		"Online appointment scheduling with automated reminders",
		"Healthcare analytics for patient outcomes and operations",
		// Education (5)
		"Full-featured LMS with course management and tracking",
		"Interactive online course platform with video streaming",
		"Student information system with grade management",
		"Live virtual classroom software with collaboration tools",
		"Education analytics dashboard for student performance tracking",
	}

	out := make([]core.Service, 0, len(names))
	for i := range names {
		out = append(out, core.Service{
			ID:              fmt.Sprintf("SRV_%04d", i+1),
			Name:            names[i],
			BusinessType:    businessTypes[i],
			PriceCategory:   prices[i],
			LanguageSupport: languages[i],
			LocationArea:    locations[i],
			Description:     descriptions[i],
		})
	}
	return out
}
