package wind

import (
	"time"

	"github.com/ngmaloney/wind-garden/internal/models"
	"github.com/ngmaloney/wind-garden/internal/random"
	"github.com/ngmaloney/wind-garden/internal/scheduler"
)

// Gust shape parameters
const (
	minLines     = 3
	lineChoices  = 4 // 3-6 lines per linear gust
	minSwirls    = 1
	swirlChoices = 2 // 1-2 swirls per swirl gust
	lineSpread   = 10.0
	maxLineDelay = 0.5
	minLineWidth = 50.0
	maxLineWidth = 200.0
	minLineSecs  = 3.0
	maxLineSecs  = 5.0
	minSwirlSecs = 4.0
	maxSwirlSecs = 6.0
	minGustBase  = 10.0
	maxGustBase  = 90.0
	minSwirlTop  = 20.0
	maxSwirlTop  = 80.0
)

// Generator creates gusts on a stage and schedules their cleanup
type Generator struct {
	src       random.Source
	sched     *scheduler.Scheduler
	stage     Stage
	threshold float64
	nextID    models.ElementID

	// OnGust, when set, observes every gust after it is placed on stage
	OnGust func(models.Gust)
}

// NewGenerator creates a gust generator. Draws above threshold produce a
// swirl gust, everything else a linear one.
func NewGenerator(src random.Source, sched *scheduler.Scheduler, stage Stage, threshold float64) *Generator {
	return &Generator{
		src:       src,
		sched:     sched,
		stage:     stage,
		threshold: threshold,
	}
}

// Gust picks one of the two effects with a single draw and produces it
func (g *Generator) Gust() models.Gust {
	var gust models.Gust
	if g.src.Float64() > g.threshold {
		gust = g.Swirl()
	} else {
		gust = g.Linear()
	}

	if g.OnGust != nil {
		g.OnGust(gust)
	}
	return gust
}

// Linear produces 3-6 wind streaks around one shared height
func (g *Generator) Linear() models.Gust {
	count := minLines + random.Intn(g.src, lineChoices)
	base := random.Range(g.src, minGustBase, maxGustBase)

	gust := models.Gust{
		Kind:  models.GustLinear,
		Base:  base,
		Lines: make([]models.WindLine, 0, count),
		At:    g.sched.Now(),
	}

	for i := 0; i < count; i++ {
		line := models.WindLine{
			ID:    g.newID(),
			Width: random.Range(g.src, minLineWidth, maxLineWidth),
		}
		line.Top = base + random.Range(g.src, -lineSpread, lineSpread)
		line.Duration = seconds(random.Range(g.src, minLineSecs, maxLineSecs))
		line.Delay = seconds(random.Range(g.src, 0, maxLineDelay))

		g.stage.AddLine(line)
		id := line.ID
		g.sched.After(line.Lifetime(), func() { g.stage.RemoveLine(id) })

		gust.Lines = append(gust.Lines, line)
	}

	return gust
}

// Swirl produces 1-2 vortex particles
func (g *Generator) Swirl() models.Gust {
	count := minSwirls + random.Intn(g.src, swirlChoices)

	gust := models.Gust{
		Kind:   models.GustSwirl,
		Swirls: make([]models.WindSwirl, 0, count),
		At:     g.sched.Now(),
	}

	for i := 0; i < count; i++ {
		swirl := models.WindSwirl{
			ID:       g.newID(),
			Top:      random.Range(g.src, minSwirlTop, maxSwirlTop),
			Duration: seconds(random.Range(g.src, minSwirlSecs, maxSwirlSecs)),
		}

		g.stage.AddSwirl(swirl)
		id := swirl.ID
		g.sched.After(swirl.Lifetime(), func() { g.stage.RemoveSwirl(id) })

		gust.Swirls = append(gust.Swirls, swirl)
	}

	return gust
}

func (g *Generator) newID() models.ElementID {
	g.nextID++
	return g.nextID
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
