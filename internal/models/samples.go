package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/ytspin/internal/shared"
	"github.com/desertthunder/ytspin/internal/spinner"
)

// SampleTitles are starter title templates.
var SampleTitles = []string{
	"Amazing Tech Discovery That Will Change Everything!",
	"Top 10 Secrets Nobody Tells You About {topic|programming|technology|AI}",
	"Why {Everyone|Most People|Experts} Are Wrong About {topic|this|technology}",
	"The {Ultimate|Complete|Definitive} Guide to {topic|success|productivity}",
	"I Tried {Something|This Method|This Trick} for 30 Days - Here's What Happened",
	"{Shocking|Surprising|Incredible} Results After {Using|Trying|Testing} This Method",
}

// SampleDescriptions are starter description templates.
var SampleDescriptions = []string{
	`Welcome to our channel! In today's video, we're diving deep into {topic|technology|programming|AI}.

🔥 What you'll learn:
- {Key point 1|Important concept|Main idea}
- {Key point 2|Advanced technique|Pro tip}
- {Key point 3|Secret method|Bonus insight}

💬 Don't forget to:
- Like this video if it helped you
- Subscribe for more {content type|tutorials|tips}
- Comment your thoughts below
- Share with your friends

📱 Follow us:
- Website: {your-website.com}
- Twitter: {@youraccount}
- Instagram: {@youraccount}

#technology #tutorial #education`,

	`🚀 Ready to {achieve|learn|master} {topic|this skill|this concept}?

In this comprehensive guide, we'll show you exactly how to {accomplish goal|solve problem|get results}.

⏰ Timestamps:
0:00 - Introduction
{1:30|2:00|2:30} - Getting Started
{5:00|6:00|7:00} - Advanced Techniques
{10:00|12:00|15:00} - Final Tips

🎯 Resources mentioned:
- {Resource 1|Tool|Software}: {link}
- {Resource 2|Book|Course}: {link}
- {Resource 3|Website|Platform}: {link}

Thanks for watching! See you in the next one! 🎉

#tutorial #howto #guide`,
}

// Samples returns the sample templates for kind.
func Samples(kind Kind) []string {
	if kind == Descriptions {
		return SampleDescriptions
	}
	return SampleTitles
}

// AppendSamples appends n distinct randomly picked samples of kind to existing text.
//
// n is capped at the number of available samples. Entries are joined with [Kind.Joiner].
func AppendSamples(kind Kind, existing string, n int, src spinner.Source) (string, error) {
	if src == nil {
		return "", fmt.Errorf("%w: nil randomness source", shared.ErrInvalidArgument)
	}
	if n < 0 {
		return "", fmt.Errorf("%w: negative sample count %d", shared.ErrInvalidArgument, n)
	}

	pool := append([]string(nil), Samples(kind)...)
	if n > len(pool) {
		n = len(pool)
	}

	// partial Fisher-Yates: the first n slots end up as a uniform sample
	for i := range n {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	picked := pool[:n]
	if len(picked) == 0 {
		return existing, nil
	}

	var b strings.Builder
	if strings.TrimSpace(existing) != "" {
		b.WriteString(strings.TrimRight(existing, "\n"))
		b.WriteString(kind.Joiner())
	}
	b.WriteString(strings.Join(picked, kind.Joiner()))
	return b.String(), nil
}
