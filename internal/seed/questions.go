package seed

import (
	"quizmate/internal/models"

	"gorm.io/gorm"
)

type bankQuestion struct {
	Text    string
	Options []string
	Answer  string
}

// builtinBank is a small starter question bank, enough to make quizzes and
// leaderboards playable on a fresh install. Production banks are imported
// with the loadquestions command instead.
var builtinBank = map[string][]bankQuestion{
	"geography": {
		{"What is the capital of France?", []string{"Paris", "Lyon", "Marseille", "Nice"}, "Paris"},
		{"Which is the longest river in the world?", []string{"Amazon", "Nile", "Yangtze", "Mississippi"}, "Nile"},
		{"Which country has the most time zones?", []string{"Russia", "USA", "China", "France"}, "France"},
		{"What is the smallest country in the world?", []string{"Monaco", "Vatican City", "San Marino", "Liechtenstein"}, "Vatican City"},
		{"Mount Kilimanjaro is in which country?", []string{"Kenya", "Tanzania", "Ethiopia", "Uganda"}, "Tanzania"},
		{"Which desert is the largest hot desert?", []string{"Gobi", "Kalahari", "Sahara", "Atacama"}, "Sahara"},
		{"What is the capital of Australia?", []string{"Sydney", "Melbourne", "Canberra", "Perth"}, "Canberra"},
		{"Which ocean is the deepest?", []string{"Atlantic", "Indian", "Arctic", "Pacific"}, "Pacific"},
		{"The Strait of Gibraltar separates Spain from which country?", []string{"Morocco", "Algeria", "Portugal", "Tunisia"}, "Morocco"},
		{"Which country is both in Europe and Asia?", []string{"Greece", "Turkey", "Poland", "Romania"}, "Turkey"},
	},
	"science": {
		{"What is the chemical symbol for gold?", []string{"Go", "Gd", "Au", "Ag"}, "Au"},
		{"How many planets are in the solar system?", []string{"7", "8", "9", "10"}, "8"},
		{"What gas do plants absorb from the atmosphere?", []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"}, "Carbon dioxide"},
		{"What is the speed of light, roughly?", []string{"300,000 km/s", "150,000 km/s", "1,000,000 km/s", "30,000 km/s"}, "300,000 km/s"},
		{"Which organ produces insulin?", []string{"Liver", "Pancreas", "Kidney", "Spleen"}, "Pancreas"},
		{"What is the hardest natural substance?", []string{"Quartz", "Diamond", "Titanium", "Graphene"}, "Diamond"},
		{"Water boils at what temperature at sea level?", []string{"90°C", "100°C", "110°C", "120°C"}, "100°C"},
		{"What particle carries a negative charge?", []string{"Proton", "Neutron", "Electron", "Photon"}, "Electron"},
		{"DNA stands for deoxyribonucleic what?", []string{"Acid", "Atom", "Agent", "Array"}, "Acid"},
		{"Which planet is known as the Red Planet?", []string{"Venus", "Mars", "Jupiter", "Mercury"}, "Mars"},
	},
	"history": {
		{"In which year did World War II end?", []string{"1943", "1944", "1945", "1946"}, "1945"},
		{"Who was the first person to walk on the moon?", []string{"Buzz Aldrin", "Neil Armstrong", "Yuri Gagarin", "John Glenn"}, "Neil Armstrong"},
		{"The Great Wall is located in which country?", []string{"Japan", "Korea", "China", "Mongolia"}, "China"},
		{"Who painted the Mona Lisa?", []string{"Michelangelo", "Raphael", "Leonardo da Vinci", "Donatello"}, "Leonardo da Vinci"},
		{"The Roman Empire fell in which century?", []string{"3rd", "4th", "5th", "6th"}, "5th"},
		{"Which ship sank in 1912 on its maiden voyage?", []string{"Lusitania", "Titanic", "Britannic", "Olympic"}, "Titanic"},
		{"Who wrote the Declaration of Independence?", []string{"George Washington", "Benjamin Franklin", "Thomas Jefferson", "John Adams"}, "Thomas Jefferson"},
		{"The Berlin Wall fell in which year?", []string{"1987", "1988", "1989", "1990"}, "1989"},
		{"Which ancient civilization built Machu Picchu?", []string{"Aztec", "Maya", "Inca", "Olmec"}, "Inca"},
		{"Who was the first female Prime Minister of the UK?", []string{"Theresa May", "Margaret Thatcher", "Angela Merkel", "Indira Gandhi"}, "Margaret Thatcher"},
	},
	"sports": {
		{"How many players are on a soccer team on the field?", []string{"9", "10", "11", "12"}, "11"},
		{"In which sport is the term 'love' used for zero?", []string{"Badminton", "Tennis", "Squash", "Golf"}, "Tennis"},
		{"The Olympics are held every how many years?", []string{"2", "3", "4", "5"}, "4"},
		{"Which country has won the most FIFA World Cups?", []string{"Germany", "Italy", "Argentina", "Brazil"}, "Brazil"},
		{"How many points is a touchdown worth in American football?", []string{"3", "6", "7", "2"}, "6"},
		{"In basketball, how many points is a shot beyond the arc?", []string{"1", "2", "3", "4"}, "3"},
		{"What is the maximum break in snooker?", []string{"147", "155", "140", "150"}, "147"},
		{"Which sport uses a shuttlecock?", []string{"Table tennis", "Badminton", "Racquetball", "Pickleball"}, "Badminton"},
		{"A marathon is how many kilometers, roughly?", []string{"35", "40", "42", "45"}, "42"},
		{"In golf, what is one stroke under par called?", []string{"Eagle", "Birdie", "Bogey", "Albatross"}, "Birdie"},
	},
}

// EnsureQuestionBank inserts the builtin question bank for any category that
// has no questions yet. Returns the total number of questions afterwards.
func EnsureQuestionBank(db *gorm.DB) (int, error) {
	for category, bank := range builtinBank {
		var count int64
		if err := db.Model(&models.Question{}).Where("category = ?", category).Count(&count).Error; err != nil {
			return 0, err
		}
		if count > 0 {
			continue
		}

		questions := make([]models.Question, 0, len(bank))
		for _, q := range bank {
			question := models.Question{Category: category, Text: q.Text, Answer: q.Answer}
			if err := question.SetOptions(q.Options); err != nil {
				return 0, err
			}
			questions = append(questions, question)
		}
		if err := db.Create(&questions).Error; err != nil {
			return 0, err
		}
	}

	var total int64
	if err := db.Model(&models.Question{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}
