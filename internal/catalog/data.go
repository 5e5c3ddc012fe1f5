package catalog

// Default returns the built-in game data. Callers may substitute their own
// asset list at session start; the event book references assets by id and
// skips effects whose target is not in play.
func Default() *Catalog {
	return &Catalog{
		Assets:            defaultAssets(),
		Spikes:            defaultSpikes(),
		Flavor:            defaultFlavor(),
		Ripples:           defaultRipples(),
		TaxShelterAssetID: "GOLD",
	}
}

func defaultAssets() []Asset {
	return []Asset{
		{ID: "NMBS", Name: "Nimbus Technologies", BasePrice: 150, Volatility: 0.020, Category: CategoryTech},
		{ID: "DOGE2", Name: "DogeRocket Coin", BasePrice: 2.50, Volatility: 0.080, Category: CategoryCrypto},
		{ID: "PRMN", Name: "Permian Crude Co", BasePrice: 80, Volatility: 0.025, Category: CategoryEnergy},
		{ID: "AEGS", Name: "Aegis Defense Systems", BasePrice: 120, Volatility: 0.018, Category: CategoryDefense},
		{ID: "HLXB", Name: "Helixia Biolabs", BasePrice: 60, Volatility: 0.040, Category: CategoryHealth},
		{ID: "FMBK", Name: "First Meridian Bank", BasePrice: 45, Volatility: 0.015, Category: CategoryFinance},
		{ID: "GOLD", Name: "Bullion Trust", BasePrice: 1900, Volatility: 0.008, Category: CategorySafe},
	}
}

func defaultSpikes() []SpikeEvent {
	return []SpikeEvent{
		{
			ID: "spk_nimbus_ai_chip", Tier: TierRare, Direction: DirectionMoon,
			Category: CategoryTech, AssetID: "NMBS",
			Headline: "Nimbus unveils photonic AI chip, preorders crash their own servers",
			Rumor:    "Supply chain sources report Nimbus booked every wafer fab slot in Asia",
			MinMult:  1.6, MaxMult: 2.4,
			Secondary: []SecondaryEffect{{AssetID: "DOGE2", Pct: 0.10}},
		},
		{
			ID: "spk_nimbus_accounting", Tier: TierRare, Direction: DirectionCrash,
			Category: CategoryTech, AssetID: "NMBS",
			Headline: "Nimbus restates three years of revenue after auditor walks out",
			Rumor:    "Junior analyst quietly flags irregularities in Nimbus filings",
			MinMult:  0.35, MaxMult: 0.6,
			Secondary: []SecondaryEffect{{AssetID: "FMBK", Pct: -0.06}},
		},
		{
			ID: "spk_doge_listing", Tier: TierCommon, Direction: DirectionMoon,
			Category: CategoryCrypto, AssetID: "DOGE2",
			Headline: "DogeRocket listed on every major exchange simultaneously",
			Rumor:    "Exchange insiders seen accumulating an unnamed meme coin",
			MinMult:  1.3, MaxMult: 1.6,
		},
		{
			ID: "spk_doge_rugpull", Tier: TierLegendary, Direction: DirectionCrash,
			Category: CategoryCrypto, AssetID: "DOGE2",
			Headline: "DogeRocket dev wallet drained; founder last seen boarding a jet",
			Rumor:    "On-chain watchers notice odd movements from the DogeRocket treasury",
			MinMult:  0.1, MaxMult: 0.25,
			Secondary: []SecondaryEffect{{AssetID: "FMBK", Pct: -0.04}, {AssetID: "GOLD", Pct: 0.03}},
		},
		{
			ID: "spk_doge_etf", Tier: TierLegendary, Direction: DirectionMoon,
			Category: CategoryCrypto, AssetID: "DOGE2",
			Headline: "Spot DogeRocket ETF approved in surprise midnight ruling",
			Rumor:    "Regulator cancels all meetings for the week without explanation",
			MinMult:  3.0, MaxMult: 6.0,
		},
		{
			ID: "spk_oil_embargo", Tier: TierRare, Direction: DirectionMoon,
			Category: CategoryEnergy, AssetID: "PRMN",
			Headline: "Strait blockade chokes a fifth of world crude shipments",
			Rumor:    "Naval movements reported near key shipping lanes",
			MinMult:  1.5, MaxMult: 2.0,
			Secondary: []SecondaryEffect{{AssetID: "AEGS", Pct: 0.12}, {AssetID: "NMBS", Pct: -0.05}},
		},
		{
			ID: "spk_oil_glut", Tier: TierCommon, Direction: DirectionCrash,
			Category: CategoryEnergy, AssetID: "PRMN",
			Headline: "Cartel floods market after quota talks collapse",
			MinMult:  0.65, MaxMult: 0.85,
		},
		{
			ID: "spk_defense_contract", Tier: TierRare, Direction: DirectionMoon,
			Category: CategoryDefense, AssetID: "AEGS",
			Headline: "Aegis lands decade-long allied air-defense megacontract",
			Rumor:    "Defense ministry officials spotted touring Aegis facilities",
			MinMult:  1.5, MaxMult: 2.2,
		},
		{
			ID: "spk_defense_scandal", Tier: TierCommon, Direction: DirectionCrash,
			Category: CategoryDefense, AssetID: "AEGS",
			Headline: "Aegis missile test fails on live broadcast",
			MinMult:  0.6, MaxMult: 0.8,
		},
		{
			ID: "spk_bio_cure", Tier: TierLegendary, Direction: DirectionMoon,
			Category: CategoryHealth, AssetID: "HLXB",
			Headline: "Helixia trial posts 94% remission; FDA fast-tracks approval",
			Rumor:    "Helixia trial site staff reportedly celebrating after hours",
			MinMult:  2.5, MaxMult: 5.0,
		},
		{
			ID: "spk_bio_recall", Tier: TierRare, Direction: DirectionCrash,
			Category: CategoryHealth, AssetID: "HLXB",
			Headline: "Helixia flagship drug pulled after adverse event cluster",
			Rumor:    "Pharmacovigilance board schedules emergency session",
			MinMult:  0.3, MaxMult: 0.55,
		},
		{
			ID: "spk_bank_run", Tier: TierLegendary, Direction: DirectionCrash,
			Category: CategoryFinance, AssetID: "FMBK",
			Headline: "Depositors mob First Meridian branches as wires freeze",
			Rumor:    "First Meridian quietly raises its deposit rates mid-quarter",
			MinMult:  0.15, MaxMult: 0.35,
			Secondary: []SecondaryEffect{{AssetID: "GOLD", Pct: 0.05}, {AssetID: "NMBS", Pct: -0.08}},
		},
		{
			ID: "spk_bank_buyout", Tier: TierCommon, Direction: DirectionMoon,
			Category: CategoryFinance, AssetID: "FMBK",
			Headline: "Sovereign fund takes strategic stake in First Meridian",
			MinMult:  1.25, MaxMult: 1.5,
		},
		{
			ID: "spk_gold_panic", Tier: TierCommon, Direction: DirectionMoon,
			Category: CategorySafe, AssetID: "GOLD",
			Headline: "Flight to safety bids bullion to record highs",
			MinMult:  1.15, MaxMult: 1.35,
		},
	}
}

func defaultFlavor() []FlavorEvent {
	return []FlavorEvent{
		{ID: "flv_tech_keynote", Category: CategoryTech, AssetID: "NMBS", Label: "news",
			Headline: "Nimbus keynote runs long; analysts split on roadmap", MinPct: -0.02, MaxPct: 0.04},
		{ID: "flv_tech_outage", Category: CategoryTech, AssetID: "NMBS", Label: "developing",
			Headline: "Regional outage hits Nimbus cloud for six hours", MinPct: -0.05, MaxPct: -0.01},
		{ID: "flv_tech_poach", Category: CategoryTech, AssetID: "NMBS", Label: "gossip",
			Headline: "Rival lab poaches two Nimbus principal engineers", MinPct: -0.03, MaxPct: 0.01},
		{ID: "flv_crypto_influencer", Category: CategoryCrypto, AssetID: "DOGE2", Label: "gossip",
			Headline: "Streamer with 40M followers changes avatar to DogeRocket", MinPct: 0.00, MaxPct: 0.09},
		{ID: "flv_crypto_fud", Category: CategoryCrypto, AssetID: "DOGE2", Label: "news",
			Headline: "Think tank calls DogeRocket 'structurally worthless'", MinPct: -0.08, MaxPct: 0.00},
		{ID: "flv_crypto_burn", Category: CategoryCrypto, AssetID: "DOGE2", Label: "report",
			Headline: "Quarterly DogeRocket token burn completes on schedule", MinPct: -0.01, MaxPct: 0.05},
		{ID: "flv_energy_weather", Category: CategoryEnergy, AssetID: "PRMN", Label: "news",
			Headline: "Gulf storm season forecast revised upward", MinPct: 0.00, MaxPct: 0.04},
		{ID: "flv_energy_strike", Category: CategoryEnergy, AssetID: "PRMN", Label: "developing",
			Headline: "Refinery workers vote to authorize strike", MinPct: -0.01, MaxPct: 0.04},
		{ID: "flv_energy_ev", Category: CategoryEnergy, AssetID: "PRMN", Label: "study",
			Headline: "Study: EV adoption curve steeper than consensus", MinPct: -0.04, MaxPct: 0.00},
		{ID: "flv_defense_budget", Category: CategoryDefense, AssetID: "AEGS", Label: "news",
			Headline: "Committee signals flat defense budget next cycle", MinPct: -0.03, MaxPct: 0.01},
		{ID: "flv_defense_demo", Category: CategoryDefense, AssetID: "AEGS", Label: "report",
			Headline: "Aegis drone swarm demo impresses at trade expo", MinPct: 0.00, MaxPct: 0.04},
		{ID: "flv_geo_summit", Category: CategoryGeo, AssetID: "AEGS", Label: "news",
			Headline: "Border talks stall for third consecutive round", MinPct: 0.00, MaxPct: 0.03},
		{ID: "flv_geo_thaw", Category: CategoryGeo, AssetID: "PRMN", Label: "news",
			Headline: "Surprise handshake at summit hints at sanctions relief", MinPct: -0.03, MaxPct: 0.01},
		{ID: "flv_health_trial", Category: CategoryHealth, AssetID: "HLXB", Label: "study",
			Headline: "Helixia phase-one data 'encouraging but early'", MinPct: -0.01, MaxPct: 0.05},
		{ID: "flv_health_patent", Category: CategoryHealth, AssetID: "HLXB", Label: "news",
			Headline: "Patent office rejects challenge to Helixia portfolio", MinPct: 0.00, MaxPct: 0.03},
		{ID: "flv_health_exec", Category: CategoryHealth, AssetID: "HLXB", Label: "gossip",
			Headline: "Helixia CFO sells 10% of personal stake", MinPct: -0.04, MaxPct: 0.00},
		{ID: "flv_fin_rates", Category: CategoryFinance, AssetID: "FMBK", Label: "news",
			Headline: "Central bank minutes read hawkish; banks reprice", MinPct: -0.02, MaxPct: 0.03},
		{ID: "flv_fin_earnings", Category: CategoryFinance, AssetID: "FMBK", Label: "report",
			Headline: "First Meridian beats on fees, misses on net interest", MinPct: -0.02, MaxPct: 0.03},
		{ID: "flv_safe_auction", Category: CategorySafe, AssetID: "GOLD", Label: "report",
			Headline: "Treasury auction tails; metals catch a mild bid", MinPct: 0.00, MaxPct: 0.02},
		{ID: "flv_safe_etf_outflow", Category: CategorySafe, AssetID: "GOLD", Label: "news",
			Headline: "Bullion ETF logs largest weekly outflow of the year", MinPct: -0.02, MaxPct: 0.00},
		{ID: "flv_comeback_upgrade", Category: CategoryComeback, AssetID: "NMBS", Label: "news",
			Headline: "Contrarian desk issues table-pounding buy on beaten-down tech", MinPct: 0.02, MaxPct: 0.07},
		{ID: "flv_comeback_meme", Category: CategoryComeback, AssetID: "DOGE2", Label: "gossip",
			Headline: "Retail forums declare 'the bottom is in' for DogeRocket", MinPct: 0.02, MaxPct: 0.10},
	}
}

func defaultRipples() map[Category][]RippleTarget {
	return map[Category][]RippleTarget{
		CategoryDefense: {
			{Category: CategoryGeo, Strength: 1.8, VolatilityBoost: 1.2},
			{Category: CategoryEnergy, Strength: 1.4, VolatilityBoost: 1.1},
		},
		CategoryGeo: {
			{Category: CategoryDefense, Strength: 1.7, VolatilityBoost: 1.2},
			{Category: CategoryEnergy, Strength: 1.5, VolatilityBoost: 1.3},
			{Category: CategorySafe, Strength: 1.4, VolatilityBoost: 1.0},
		},
		CategoryEnergy: {
			{Category: CategoryGeo, Strength: 1.4, VolatilityBoost: 1.1},
		},
		CategoryCrypto: {
			{Category: CategoryFinance, Strength: 1.3, VolatilityBoost: 1.2},
			{Category: CategoryTech, Strength: 1.2, VolatilityBoost: 1.1},
		},
		CategoryFinance: {
			{Category: CategorySafe, Strength: 1.6, VolatilityBoost: 1.1},
			{Category: CategoryCrypto, Strength: 0.7, VolatilityBoost: 1.3},
		},
		CategoryTech: {
			{Category: CategoryCrypto, Strength: 1.3, VolatilityBoost: 1.1},
		},
		CategoryHealth: {
			{Category: CategoryTech, Strength: 1.1, VolatilityBoost: 1.0},
		},
	}
}
