package dialogue

// Title heads every dialogue box.
const Title = "Talk to Oski the Bear:"

// Speaker identifies who says a line.
type Speaker int

const (
	SpeakerOski Speaker = iota
	SpeakerPlayer
)

// String implements fmt.Stringer.
func (s Speaker) String() string {
	if s == SpeakerPlayer {
		return "You"
	}
	return "Oski"
}

// Line is one utterance shown after a choice.
type Line struct {
	Speaker Speaker
	Text    string
}

func oski(text string) Line   { return Line{Speaker: SpeakerOski, Text: text} }
func player(text string) Line { return Line{Speaker: SpeakerPlayer, Text: text} }

// Option labels as presented to the player.
var labels = map[Option]string{
	OptConcerned: "Oski, you look terrible! Are you okay?",
	OptGoodbye:   "Goodbye!",
	OptOfferHelp: "No Oski, you need help. Let's get you treatment.",
	OptRefuse:    "No way! No more beer for you! Stupid bear.",
	OptGiveItem:  "*Give Oski the clipper card*",
}

// Oski's replies.
var (
	lineDying    = oski("I'm dying... please get me more beer...")
	lineGoodbye  = oski("Goodbye...")
	lineGrateful = oski("Thank you, I knew I could count on you...")
	lineFindCard = oski("Find me a BART card so I can get treatment.")
	lineGrowl    = oski("Grrrrrr...")
	lineThreat   = oski("Go get me some beer... or else...")
	lineLunch    = oski("I warned you... time for lunch!")
	linePlea     = player("No Oski, don't do it!!! Stop!!!")
	lineScream   = player("AAAAAAAAAAAAHHHHH!!!!!")
	lineSaved    = oski("Thank you! Off to newer beginnings!")
)

// Key order of the options in each tree. Option 3 is appended only while the
// player carries the card.
var trees = map[State][2]Option{
	StateFirstTree:  {OptConcerned, OptGoodbye},
	StateSecondTree: {OptOfferHelp, OptRefuse},
}
