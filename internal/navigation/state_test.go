package navigation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]PageID{
		"home":      Home,
		" Contact ": Contact,
		"FAQ":       FAQ,
		"pricing":   NotFound,
		"":          NotFound,
	}
	for in, want := range cases {
		require.Equal(t, want, Parse(in), "input=%q", in)
	}
}

func TestNewState_DefaultsToHome(t *testing.T) {
	require.Equal(t, Home, NewState("").Current())
	require.Equal(t, Home, NewState(NotFound).Current())
	require.Equal(t, Projects, NewState(Projects).Current())
}

func TestGoTo_NotifiesOnChangeOnly(t *testing.T) {
	s := NewState(Home)
	var got [][2]PageID
	unsubscribe := s.Subscribe(func(from, to PageID) {
		got = append(got, [2]PageID{from, to})
	})

	require.Equal(t, Contact, s.GoTo(Contact))
	require.Equal(t, Contact, s.GoTo(Contact))
	require.Equal(t, NotFound, s.GoTo("blog"))
	require.Equal(t, [][2]PageID{{Home, Contact}, {Contact, NotFound}}, got)

	unsubscribe()
	unsubscribe()
	s.GoTo(Home)
	require.Len(t, got, 2)
}

func TestGoTo_ConcurrentUse(t *testing.T) {
	s := NewState(Home)
	pages := []PageID{Home, About, Services, Projects, FAQ, Contact}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unsubscribe := s.Subscribe(func(PageID, PageID) {})
			s.GoTo(pages[i%len(pages)])
			unsubscribe()
		}(i)
	}
	wg.Wait()
	require.True(t, s.Current().Valid())
}
