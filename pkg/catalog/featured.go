package catalog

// RewardTiers are the view totals, in thousands, shown on the "my challenges" reward track.
var RewardTiers = []int{1, 5, 10, 20, 50, 100, 500}

// ReachedTiers returns the reward tiers unlocked by views.
func ReachedTiers(views int) []int {
	reached := []int{}
	for _, tier := range RewardTiers {
		if views >= tier*1000 {
			reached = append(reached, tier)
		}
	}
	return reached
}

const featuredRounds = 5

var featured = []Level{
	newFeatured("bird", "Bird Butter Bubble", "bird", "butter", "bubble", "baby"),
	newFeatured("numbers", "Numbers 1-8", "1", "2", "3", "4"),
	newFeatured("colors", "Colors", "red", "blue", "green", "yellow"),
	newFeatured("country", "Country Road C-Pack", "russia", "ukraine", "usa", "china"),
}

func newFeatured(id, name string, words ...string) Level {
	images := make([]string, len(words))
	names := make(map[string]string, len(words))
	for i, word := range words {
		images[i] = "assets/images/" + word + ".png"
		names[images[i]] = word
	}
	return Level{ID: id, Name: name, Rounds: featuredRounds, Images: images, ImageNames: names}
}

// Featured returns copies of the built-in levels.
func Featured() []Level {
	out := make([]Level, len(featured))
	for i, l := range featured {
		out[i] = l.Clone()
	}
	return out
}

// FeaturedByID returns the built-in level with id.
func FeaturedByID(id string) (Level, bool) {
	for _, l := range featured {
		if l.ID == id {
			return l.Clone(), true
		}
	}
	return Level{}, false
}
