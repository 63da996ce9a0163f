package catalog

import (
	"github.com/shopspring/decimal"

	"socialstack/internal/model"
)

// Catalog names served by the storefront panels.
const (
	SMM   = "smm"
	OTP   = "otp"
	Proxy = "proxy"
	RDP   = "rdp"
)

func usd(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Seed returns the built-in catalogs.
func Seed() map[string][]model.CatalogItem {
	return map[string][]model.CatalogItem{
		SMM:   smmServices(),
		OTP:   otpNumbers(),
		Proxy: proxyPlans(),
		RDP:   rdpPlans(),
	}
}

func rate(id, name, group, category, typ, price, cost string, per, min, max int64) model.CatalogItem {
	return model.CatalogItem{
		ID: id, Name: name, Group: group, Category: category, Type: typ,
		Region: model.Global, Kind: model.PricingRate,
		Price: usd(price), Cost: usd(cost), Per: per, Min: min, Max: max,
	}
}

func smmServices() []model.CatalogItem {
	return []model.CatalogItem{
		rate("1001", "Instagram Followers", "Social", "Instagram", "Real Followers", "2.90", "1.20", 1000, 100, 500000),
		rate("1002", "Instagram Likes", "Social", "Instagram", "Instant Likes", "0.45", "0.18", 1000, 50, 100000),
		rate("1003", "Instagram Reel Views", "Social", "Instagram", "Viral Views", "0.08", "0.03", 1000, 100, 10000000),
		rate("1004", "Instagram Comments (Custom)", "Social", "Instagram", "Engagement", "12.00", "6.50", 1000, 10, 5000),
		rate("1101", "TikTok Views", "Social", "TikTok", "Viral Views", "0.05", "0.02", 1000, 1000, 100000000),
		rate("1102", "TikTok Followers", "Social", "TikTok", "Real Followers", "3.40", "1.70", 1000, 100, 200000),
		rate("1103", "TikTok Likes", "Social", "TikTok", "Instant Likes", "0.60", "0.22", 1000, 100, 500000),
		rate("1201", "Facebook Page Likes", "Social", "Facebook", "Real Followers", "4.10", "2.40", 1000, 100, 100000),
		rate("1202", "Facebook Post Reactions", "Social", "Facebook", "Engagement", "1.10", "0.55", 1000, 50, 50000),
		rate("1301", "X Followers", "Social", "X (Twitter)", "Real Followers", "5.20", "3.10", 1000, 100, 50000),
		rate("1302", "X Retweets", "Social", "X (Twitter)", "Engagement", "2.00", "0.90", 1000, 20, 20000),
		rate("2001", "YouTube Views", "Video", "YouTube", "Viral Views", "1.80", "0.95", 1000, 500, 1000000),
		rate("2002", "YouTube Subscribers", "Video", "YouTube", "Real Followers", "18.00", "9.00", 1000, 50, 20000),
		rate("2003", "YouTube Watch Hours", "Video", "YouTube", "", "9.50", "0", 1000, 100, 4000),
		rate("2101", "Twitch Live Viewers", "Video", "Twitch", "Viral Views", "7.00", "4.50", 1000, 10, 2000),
		rate("3001", "Spotify Plays", "Music", "Spotify", "Streams", "0.90", "0.40", 1000, 1000, 5000000),
		rate("3002", "Spotify Monthly Listeners", "Music", "Spotify", "Streams", "2.20", "1.10", 1000, 500, 500000),
		rate("3101", "SoundCloud Plays", "Music", "SoundCloud", "Streams", "0.30", "0.12", 1000, 1000, 1000000),
	}
}

func regional(id, name, group, category, typ, price, cost string, countries ...string) model.CatalogItem {
	return model.CatalogItem{
		ID: id, Name: name, Group: group, Category: category, Type: typ,
		Kind: model.PricingRegional, Price: usd(price), Cost: usd(cost), Per: 1,
		Countries: countries,
	}
}

func otpNumbers() []model.CatalogItem {
	return []model.CatalogItem{
		regional("otp-wa", "WhatsApp Verification", "Messaging", "WhatsApp", "SMS", "0.85", "0.40", "USA", "UK", "India", "Brazil"),
		regional("otp-tg", "Telegram Verification", "Messaging", "Telegram", "SMS", "0.70", "0.30", "USA", "Germany", "Indonesia"),
		regional("otp-sig", "Signal Verification", "Messaging", "Signal", "SMS", "0.95", "0.50", "USA", "Netherlands"),
		regional("otp-ig", "Instagram Verification", "Social", "Instagram", "SMS", "0.55", "0.20", "USA", "UK", "Canada"),
		regional("otp-fb", "Facebook Verification", "Social", "Facebook", "SMS", "0.50", "0.20", "India", "Philippines", "USA"),
		regional("otp-tt", "TikTok Verification", "Social", "TikTok", "SMS", "0.60", "0.25", "USA", "Vietnam"),
		regional("otp-gv", "Google Voice Number", "Services", "Google", "Voice", "2.50", "1.40", "USA"),
		regional("otp-ub", "Uber Verification", "Services", "Uber", "SMS", "0.45", "0.15", "USA", "UK", "Mexico"),
		regional("otp-any", "Any Service (Rental 4h)", "Services", "Other", "Rental", "1.90", "0", "USA", "UK", "Germany", "France"),
	}
}

func flat(id, name, group, category, typ, region, price, cost, note string) model.CatalogItem {
	return model.CatalogItem{
		ID: id, Name: name, Group: group, Category: category, Type: typ, Region: region,
		Kind: model.PricingFlat, Price: usd(price), Cost: usd(cost), Per: 1, Note: note,
	}
}

func proxyPlans() []model.CatalogItem {
	return []model.CatalogItem{
		flat("px-res-us", "Residential Proxy USA", "Residential", "Rotating", "Residential", "USA", "12.00", "7.00", "5 GB / 30 days"),
		flat("px-res-uk", "Residential Proxy UK", "Residential", "Rotating", "Residential", "UK", "12.50", "7.20", "5 GB / 30 days"),
		flat("px-res-gl", "Residential Proxy Worldwide", "Residential", "Rotating", "Residential", model.Global, "10.00", "6.00", "5 GB / 30 days"),
		flat("px-isp-us", "Static ISP Proxy USA", "ISP", "Static", "ISP", "USA", "4.00", "2.10", "1 IP / 30 days"),
		flat("px-isp-de", "Static ISP Proxy Germany", "ISP", "Static", "ISP", "Germany", "4.20", "2.30", "1 IP / 30 days"),
		flat("px-dc-gl", "Datacenter Proxy Pack", "Datacenter", "Shared", "Datacenter", model.Global, "1.50", "0.40", "10 IPs / 30 days"),
		flat("px-mob-us", "Mobile 4G Proxy USA", "Mobile", "Rotating", "Mobile", "USA", "45.00", "30.00", "Unlimited / 30 days"),
	}
}

func rdpPlans() []model.CatalogItem {
	return []model.CatalogItem{
		flat("rdp-win-s", "Windows RDP Starter", "Windows", "Shared", "Starter", "USA", "8.00", "4.00", "2 vCPU / 4 GB RAM"),
		flat("rdp-win-p", "Windows RDP Pro", "Windows", "Dedicated", "Pro", "Germany", "22.00", "13.00", "4 vCPU / 8 GB RAM"),
		flat("rdp-win-a", "Windows RDP Admin", "Windows", "Dedicated", "Admin", "Netherlands", "35.00", "21.00", "8 vCPU / 16 GB RAM"),
		flat("rdp-lin-s", "Linux VPS Starter", "Linux", "Shared", "Starter", model.Global, "5.00", "2.20", "1 vCPU / 2 GB RAM"),
		flat("rdp-lin-p", "Linux VPS Pro", "Linux", "Dedicated", "Pro", "UK", "15.00", "9.00", "4 vCPU / 8 GB RAM"),
	}
}
