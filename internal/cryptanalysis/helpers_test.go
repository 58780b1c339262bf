package cryptanalysis

import "github.com/verte-zerg/vigcrack/internal/alphabet"

// passage is plain English prose, long enough for every column of a short
// key to carry a clear frequency signal.
const passage = "It was late in the evening when the old keeper of the lighthouse climbed the narrow stairs for the " +
	"last time that season. The sea below was restless, and the wind carried the smell of salt and rain " +
	"across the rocks. He had spent most of his life watching the water, counting the ships that passed " +
	"in the night, and writing down the weather in a small leather book that he kept beside the lamp. " +
	"There were entries for every day of every year, some of them only a single line, others filling a " +
	"whole page with the details of a storm that had kept him awake until the morning. When the young men " +
	"from the harbour asked him why he still wrote in the book, he told them that the sea remembers " +
	"nothing, and so somebody has to remember for it. They laughed at him, but they also listened, " +
	"because everyone in the town knew that the keeper had never once let the light go dark. On the night " +
	"of the great storm, when the waves rose higher than the houses near the shore, it was his light that " +
	"brought the fishing boats home. The next morning the people of the town walked out to the point to " +
	"thank him, and they found him asleep at the table with the book open in front of him and the lamp " +
	"still burning above his head."

func englishTable() alphabet.Table {
	table, err := alphabet.Lookup(alphabet.Builtin(), "English")
	if err != nil {
		panic(err)
	}
	return table
}
