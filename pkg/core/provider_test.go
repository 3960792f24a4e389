package core

import (
	"reflect"
	"testing"

	"github.com/loomui/loom/pkg/graphics"
)

var themeType = reflect.TypeOf(themeView{})

// themeConsumerView is a comparable composable view reading the theme, so
// value-equal rebuilds of its parent short-circuit and only provider
// notifications re-run its build.
type themeConsumerView struct {
	ViewBase
}

var themeConsumerBuilds int

func (v themeConsumerView) CreateElement() Element { return NewComposableElement() }

func (v themeConsumerView) Build(ctx BuildContext) View {
	themeConsumerBuilds++
	theme := ctx.DependOnProvider(themeType).(themeView)
	return boxView{Color: theme.Color}
}

func TestProviderNotifiesDependents(t *testing.T) {
	themeConsumerBuilds = 0
	makeTree := func(color graphics.Color) View {
		return themeView{Color: color, Child: themeConsumerView{}}
	}

	owner, renderRoot, root := mountTree(t, makeTree(graphics.ColorRed))
	if themeConsumerBuilds != 1 {
		t.Fatalf("builds after mount = %d, want 1", themeConsumerBuilds)
	}

	// A value change rebuilds the dependent.
	RebuildRoot(root, renderRoot, makeTree(graphics.ColorBlue))
	owner.FlushBuild()
	if themeConsumerBuilds != 2 {
		t.Fatalf("builds after change = %d, want 2", themeConsumerBuilds)
	}

	// An equal value does not.
	RebuildRoot(root, renderRoot, makeTree(graphics.ColorBlue))
	owner.FlushBuild()
	if themeConsumerBuilds != 2 {
		t.Fatalf("builds after no-op update = %d, want still 2", themeConsumerBuilds)
	}
}

func TestProviderDependentSetIsUnique(t *testing.T) {
	consumer := builderView{BuildFn: func(ctx BuildContext) View {
		// Two reads in one build register once.
		ctx.DependOnProvider(themeType)
		ctx.DependOnProvider(themeType)
		return boxView{Color: graphics.ColorRed}
	}}
	_, _, root := mountTree(t, themeView{Color: graphics.ColorRed, Child: consumer})

	provider := collectElements(root)[1].(*ProviderElement)
	if got := provider.DependentCount(); got != 1 {
		t.Fatalf("dependent count = %d, want 1", got)
	}
}

func TestDependentDeactivationRemovesRegistration(t *testing.T) {
	showConsumer := true
	gate := builderView{BuildFn: func(ctx BuildContext) View {
		if !showConsumer {
			return boxView{Color: graphics.ColorBlack}
		}
		return builderView{BuildFn: func(ctx BuildContext) View {
			ctx.DependOnProvider(themeType)
			return boxView{Color: graphics.ColorRed}
		}}
	}}
	owner, _, root := mountTree(t, themeView{Color: graphics.ColorRed, Child: gate})
	provider := collectElements(root)[1].(*ProviderElement)
	if provider.DependentCount() != 1 {
		t.Fatalf("dependent count = %d, want 1", provider.DependentCount())
	}

	showConsumer = false
	collectElements(root)[2].MarkNeedsBuild()
	owner.FlushBuild()

	if provider.DependentCount() != 0 {
		t.Fatalf("dependent count after removal = %d, want 0", provider.DependentCount())
	}
}

func TestDependOnMissingProviderReturnsNil(t *testing.T) {
	var got ProviderView = themeView{}
	consumer := builderView{BuildFn: func(ctx BuildContext) View {
		got = ctx.DependOnProvider(themeType)
		return boxView{Color: graphics.ColorRed}
	}}
	mountTree(t, consumer)
	if got != nil {
		t.Fatalf("DependOnProvider without ancestor = %v, want nil", got)
	}
}
