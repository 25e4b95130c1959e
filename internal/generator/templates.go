package generator

import "sort"

const DefaultTone = "heartfelt"

var verseTemplates = map[string][]string{
	"pop": {
		"[Verse]\n{{name}}, you light up every room,\nSo {{trait1}}, so {{trait2}}, chasing off the gloom.\n" +
			"From {{hobby1}} to {{hobby2}}, you do it with a grin,\nTurning {{age}} today, let the party begin!",
		"[Verse]\nHey {{nickname}}, it's your day to shine,\nMy {{trait1}} {{relationship}}, one of a kind.\n" +
			"Remember {{sharedMemory}}? I still hold it near,\n{{importantPeople}} are singing loud and clear.",
		"[Verse]\nThey say you're {{trait3}}, they say you're {{trait2}},\nWhile you're busy {{occupation}}, we're cheering for you.\n" +
			"Still can't forget {{funnyStory}},\n{{name}}, this whole day is your story.",
	},
	"rock": {
		"[Verse]\nCrank it up for {{name}}, turn the amps to ten,\n{{trait1}} and {{trait2}}, let's do it all again.\n" +
			"{{hobby1}} all night long, no slowing down,\n{{age}} candles burning, loudest in the town!",
		"[Verse]\nMy {{relationship}} {{nickname}}, a legend on the stage,\nHates {{petPeeve}} but rocks at any age.\n" +
			"We survived {{funnyStory}},\nNow raise your glass to the {{trait3}} glory!",
		"[Verse]\nFrom {{occupation}} by day to {{hobby2}} by night,\n{{name}}, you're {{trait2}}, you're dynamite.\n" +
			"{{importantPeople}} in the front row screaming,\nThis birthday's louder than we're dreaming!",
	},
	"country": {
		"[Verse]\nDown a dusty road lives {{name}}, my {{relationship}} true,\nAs {{trait1}} as a sunrise and {{trait2}} too.\n" +
			"Spends the weekends {{hobby1}}, never minds the rain,\n{{age}} years of good old heart, and not a bit of pain.",
		"[Verse]\nWell I remember {{sharedMemory}},\nPorch lights glowin', {{nickname}} laughin' with me.\n" +
			"You can't stand {{petPeeve}}, Lord I know it's true,\nBut there ain't nobody {{trait3}} like you.",
		"[Verse]\nPour a sweet tea for {{name}} tonight,\n{{importantPeople}} gathered, everything's right.\n" +
			"Still laughin' 'bout {{funnyStory}},\nHere's to you and your {{trait2}} glory.",
	},
	"rap": {
		"[Verse]\nYo, it's {{name}} on the mic, yeah the {{trait1}} one,\n{{age}} laps around the sun and we just begun.\n" +
			"{{hobby1}} on the daily, {{hobby2}} on repeat,\n{{trait2}} with the flow, can't nobody compete.",
		"[Verse]\nMy {{relationship}} {{nickname}}, certified {{trait3}},\nGrinding at {{occupation}}, yeah that's the verdict.\n" +
			"Hate {{petPeeve}}, keep it moving fast,\nThis birthday's built to last.",
		"[Verse]\nFlashback to {{funnyStory}},\nWe was crying laughing, that's the story.\n" +
			"{{importantPeople}} in the building, hands up high,\n{{name}}'s birthday, touch the sky.",
	},
	"ballad": {
		"[Verse]\n{{name}}, in the quiet of this day,\nI think of how you're {{trait1}} in every way.\n" +
			"The years have made you {{trait2}} and kind,\n{{age}} and still the brightest soul I'll find.",
		"[Verse]\nDo you remember {{sharedMemory}}?\nThe world stood still, just you and me.\n" +
			"My {{relationship}}, my {{trait3}} friend,\nA love like yours will never end.",
		"[Verse]\nFor all the hours spent {{hobby1}},\nFor every dream of {{occupation}},\n" +
			"{{importantPeople}} hold you close tonight,\n{{nickname}}, you make the whole world bright.",
	},
}

var chorusTemplates = map[string]string{
	"heartfelt":     "[Chorus]\nHappy birthday, {{name}}, we love you so,\nMore than all the words could ever show.\n{{message}}",
	"funny":         "[Chorus]\nHappy birthday, {{name}}, you're older than dirt,\nBut still {{trait1}}, so don't get hurt!\n{{message}}",
	"inspirational": "[Chorus]\nHappy birthday, {{name}}, reach for the sky,\nThis is your year, spread your wings and fly.\n{{message}}",
	"romantic":      "[Chorus]\nHappy birthday, {{name}}, my heart is yours,\nEvery year with you, my love just soars.\n{{message}}",
}

// Styles lists the supported music styles in a stable order.
func Styles() []string {
	out := make([]string, 0, len(verseTemplates))
	for s := range verseTemplates {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func Tones() []string {
	out := make([]string, 0, len(chorusTemplates))
	for t := range chorusTemplates {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func IsStyle(style string) bool {
	_, ok := verseTemplates[style]
	return ok
}
