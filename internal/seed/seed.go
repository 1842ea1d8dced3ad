package seed

import (
	"github.com/heriaond/healthy-lifestyle-tips/internal/model"
	"gorm.io/gorm"
)

// tips is the starter data set. Seed tips have no creator.
var tips = []model.Tip{
	// Sleep
	{
		Category:    model.CategorySleep,
		Title:       "Maintain a Consistent Sleep Schedule",
		Description: "Go to bed and wake up at the same time every day, even on weekends. This helps regulate your body's internal clock and improves sleep quality.",
	},
	{
		Category:    model.CategorySleep,
		Title:       "Create a Relaxing Bedtime Routine",
		Description: "Develop a calming pre-sleep routine like reading, gentle stretching, or meditation. Avoid screens 30-60 minutes before bed as blue light can disrupt sleep.",
	},
	{
		Category:    model.CategorySleep,
		Title:       "Optimize Your Sleep Environment",
		Description: "Keep your bedroom cool (60-67°F), dark, and quiet. Consider blackout curtains, earplugs, or a white noise machine for better sleep quality.",
	},

	// Nutrition
	{
		Category:    model.CategoryNutrition,
		Title:       "Eat a Rainbow of Vegetables",
		Description: "Include a variety of colorful vegetables in your diet. Different colors provide different nutrients and antioxidants essential for optimal health.",
	},
	{
		Category:    model.CategoryNutrition,
		Title:       "Stay Hydrated Throughout the Day",
		Description: "Drink at least 8 glasses of water daily. Start your day with a glass of water and keep a reusable bottle with you to maintain hydration.",
	},
	{
		Category:    model.CategoryNutrition,
		Title:       "Practice Mindful Eating",
		Description: "Eat slowly and without distractions. Pay attention to hunger and fullness cues, savoring each bite to improve digestion and prevent overeating.",
	},
	{
		Category:    model.CategoryNutrition,
		Title:       "Limit Processed Foods",
		Description: "Choose whole, unprocessed foods whenever possible. Minimize added sugars, excess sodium, and artificial ingredients for better overall health.",
	},

	// Movement
	{
		Category:    model.CategoryMovement,
		Title:       "Take Short Walking Breaks",
		Description: "Stand up and walk for 5 minutes every hour. This combats the negative effects of prolonged sitting and boosts energy and circulation.",
	},
	{
		Category:    model.CategoryMovement,
		Title:       "Mix Cardio and Strength Training",
		Description: "Aim for 150 minutes of moderate cardio per week plus 2 days of strength training. This combination supports heart health and maintains muscle mass.",
	},
	{
		Category:    model.CategoryMovement,
		Title:       "Stretch Daily",
		Description: "Spend 10-15 minutes stretching each day to improve flexibility, reduce muscle tension, and prevent injuries. Focus on major muscle groups.",
	},
	{
		Category:    model.CategoryMovement,
		Title:       "Find Activities You Enjoy",
		Description: "Choose physical activities you genuinely enjoy, whether it's dancing, hiking, swimming, or team sports. You're more likely to stay consistent.",
	},

	// Stress
	{
		Category:    model.CategoryStress,
		Title:       "Practice Deep Breathing",
		Description: "Try the 4-7-8 technique: inhale for 4 counts, hold for 7, exhale for 8. This activates your parasympathetic nervous system to reduce stress.",
	},
	{
		Category:    model.CategoryStress,
		Title:       "Set Healthy Boundaries",
		Description: "Learn to say no to commitments that overwhelm you. Protect your time and energy by setting clear boundaries in work and personal life.",
	},
	{
		Category:    model.CategoryStress,
		Title:       "Connect with Others",
		Description: "Maintain strong social connections. Regular interaction with friends and family provides emotional support and reduces feelings of stress and isolation.",
	},
	{
		Category:    model.CategoryStress,
		Title:       "Practice Gratitude",
		Description: "Write down three things you're grateful for each day. This simple practice shifts focus from stressors to positive aspects of life.",
	},
}

// Run inserts the starter tips into an empty tips table. A table that
// already has rows is left untouched.
func Run(db *gorm.DB) (int, error) {
	var n int64
	if err := db.Model(&model.Tip{}).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	rows := make([]model.Tip, len(tips))
	copy(rows, tips)
	if err := db.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
