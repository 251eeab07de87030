package allocation

// DefaultCatalog returns the built-in USD catalog of GCC offerings, used when
// no catalog file is configured. Real estate is sold in fractions worth the
// project's minimum ticket; crypto in fixed-size lots.
func DefaultCatalog() *Catalog {
	usd := func(v float64) Money { return M(v, "USD") }
	return NewCatalog(
		Instrument{
			ID: "dubai_marina_001", Category: RealEstate, Name: "Dubai Marina Luxury Residences",
			Names:     Translations{"ar": "مساكن دبي مارينا الفاخرة", "fr": "Résidences de Luxe Dubai Marina"},
			UnitPrice: usd(50000), MinInvestment: usd(50000), ExpectedReturn: 7.2, Risk: RiskMedium,
			Location: "Dubai Marina, UAE", Market: "uae", Kind: "residential", Shariah: true,
			Description:  "20% down payment, 80% over 4 years",
			Descriptions: Translations{"ar": "20% دفعة مقدمة، 80% على 4 سنوات", "fr": "20% d'acompte, 80% sur 4 ans"},
		},
		Instrument{
			ID: "riyadh_north_002", Category: RealEstate, Name: "North Riyadh Compound",
			Names:     Translations{"ar": "مجمع شمال الرياض", "fr": "Complexe Nord Riyadh"},
			UnitPrice: usd(30000), MinInvestment: usd(30000), ExpectedReturn: 6.8, Risk: RiskLow,
			Location: "North Riyadh, Saudi Arabia", Market: "ksa", Kind: "compound", Shariah: true,
			Description:  "15% down payment, 85% over 5 years",
			Descriptions: Translations{"ar": "15% دفعة مقدمة، 85% على 5 سنوات", "fr": "15% d'acompte, 85% sur 5 ans"},
		},
		Instrument{
			ID: "aramco_001", Category: Stocks, Name: "Saudi Aramco (2222.SR)",
			Names:     Translations{"ar": "أرامكو السعودية (2222.SR)", "fr": "Saudi Aramco (2222.SR)"},
			UnitPrice: usd(7.58), MinInvestment: usd(150), ExpectedReturn: 8.5, Risk: RiskMedium,
			Sector: "energy", Market: "ksa", Kind: "dividend", Shariah: true,
			Description:  "World's largest oil company with strong dividend yield",
			Descriptions: Translations{"ar": "أكبر شركة نفط في العالم مع عائد أرباح قوي", "fr": "Plus grande compagnie pétrolière mondiale avec fort rendement de dividende"},
		},
		Instrument{
			ID: "emaar_001", Category: Stocks, Name: "Emaar Properties (EMAAR.DU)",
			Names:     Translations{"ar": "إعمار العقارية (EMAAR.DU)", "fr": "Emaar Properties (EMAAR.DU)"},
			UnitPrice: usd(2.14), MinInvestment: usd(100), ExpectedReturn: 9.2, Risk: RiskMedium,
			Sector: "real-estate", Market: "uae", Kind: "growth", Shariah: true,
			Description:  "Leading real estate developer in MENA region",
			Descriptions: Translations{"ar": "مطور عقاري رائد في منطقة الشرق الأوسط وشمال أفريقيا", "fr": "Développeur immobilier leader dans la région MENA"},
		},
		Instrument{
			ID: "mena_tech_fund_001", Category: Stocks, Name: "MENA Tech Startup Fund",
			Names:     Translations{"ar": "صندوق الشركات الناشئة التقنية في الشرق الأوسط", "fr": "Fonds Startups Tech MENA"},
			UnitPrice: usd(5000), MinInvestment: usd(5000), ExpectedReturn: 15.0, Risk: RiskHigh,
			Sector: "technology", Market: GlobalMarket, Kind: "equity-crowdfunding",
			Description:  "Diversified portfolio of high-growth MENA tech startups",
			Descriptions: Translations{"ar": "محفظة متنوعة من الشركات الناشئة التقنية عالية النمو في الشرق الأوسط", "fr": "Portefeuille diversifié de startups tech MENA à forte croissance"},
		},
		Instrument{
			ID: "gold_etf_001", Category: Gold, Name: "Gold Exchange Traded Fund (GOLD.SR)",
			Names:     Translations{"ar": "صندوق الذهب المتداول (GOLD.SR)", "fr": "Fonds Négocié en Bourse Or (GOLD.SR)"},
			UnitPrice: usd(65.50), MinInvestment: usd(500), ExpectedReturn: 6.2, Risk: RiskLow,
			Market: GlobalMarket, Kind: "etf", Shariah: true,
			Description:  "Track gold prices without physical storage requirements",
			Descriptions: Translations{"ar": "تتبع أسعار الذهب بدون متطلبات التخزين المادي", "fr": "Suivre les prix de l'or sans exigences de stockage physique"},
		},
		Instrument{
			ID: "physical_gold_001", Category: Gold, Name: "Physical Gold Bars 24K",
			Names:     Translations{"ar": "سبائك الذهب المادية عيار 24", "fr": "Lingots d'Or Physique 24K"},
			UnitPrice: usd(67.20), MinInvestment: usd(1000), ExpectedReturn: 5.8, Risk: RiskLow,
			Market: GlobalMarket, Kind: "physical", Shariah: true,
			Description:  "Physical gold ownership with secure vault storage",
			Descriptions: Translations{"ar": "ملكية الذهب الفعلي مع تخزين آمن في الخزائن", "fr": "Propriété d'or physique avec stockage sécurisé en coffre"},
		},
		Instrument{
			ID: "uae_bond_001", Category: Bonds, Name: "UAE Government Bond 2029",
			Names:     Translations{"ar": "سندات الحكومة الإماراتية 2029", "fr": "Obligation Gouvernement EAU 2029"},
			UnitPrice: usd(1000), MinInvestment: usd(1000), ExpectedReturn: 4.2,
			CreditRating: "AA", Market: "uae", Kind: "government",
			Description:  "High-grade government bond with stable returns",
			Descriptions: Translations{"ar": "سندات حكومية عالية الجودة مع عوائد مستقرة", "fr": "Obligation gouvernementale de haute qualité avec rendements stables"},
		},
		Instrument{
			ID: "islamic_sukuk_001", Category: Bonds, Name: "Islamic Development Bank Sukuk",
			Names:     Translations{"ar": "صكوك البنك الإسلامي للتنمية", "fr": "Sukuk Banque Islamique de Développement"},
			UnitPrice: usd(1000), MinInvestment: usd(1000), ExpectedReturn: 4.8, Risk: RiskLow,
			CreditRating: "AAA", Market: GlobalMarket, Kind: "multilateral", Shariah: true,
			Description:  "Sharia-compliant investment instrument with predictable returns",
			Descriptions: Translations{"ar": "أداة استثمارية متوافقة مع الشريعة مع عوائد متوقعة", "fr": "Instrument d'investissement conforme à la Charia avec rendements prévisibles"},
		},
		Instrument{
			ID: "term_deposit_001", Category: Savings, Name: "12-Month Term Deposit",
			Names:         Translations{"ar": "وديعة لأجل 12 شهراً", "fr": "Dépôt à Terme 12 Mois"},
			MinInvestment: usd(1000), ExpectedReturn: 4.0, Risk: RiskLow,
			Market: GlobalMarket, Kind: "term-deposit",
			Description:  "Fixed rate, capital guaranteed",
			Descriptions: Translations{"ar": "سعر ثابت، رأس المال مضمون", "fr": "Taux fixe, capital garanti"},
		},
		Instrument{
			ID: "mudaraba_savings_001", Category: Savings, Name: "Mudaraba Savings Account",
			Names:         Translations{"ar": "حساب توفير المضاربة", "fr": "Compte d'Épargne Moudaraba"},
			MinInvestment: usd(500), ExpectedReturn: 3.6, Risk: RiskLow,
			Market: GlobalMarket, Kind: "savings-account", Shariah: true,
			Description:  "Profit-sharing savings, withdrawable monthly",
			Descriptions: Translations{"ar": "توفير بمشاركة الأرباح، قابل للسحب شهرياً", "fr": "Épargne à partage des bénéfices, retrait mensuel"},
		},
		Instrument{
			ID: "btc_lot_001", Category: Crypto, Name: "Bitcoin (100 USD lot)",
			Names:     Translations{"ar": "بيتكوين (حصة 100 دولار)", "fr": "Bitcoin (lot de 100 USD)"},
			UnitPrice: usd(100), MinInvestment: usd(100), ExpectedReturn: 15.0, Risk: RiskHigh,
			Sector: "major", Market: GlobalMarket, Kind: "spot",
		},
		Instrument{
			ID: "eth_lot_001", Category: Crypto, Name: "Ethereum (50 USD lot)",
			Names:     Translations{"ar": "إيثريوم (حصة 50 دولار)", "fr": "Ethereum (lot de 50 USD)"},
			UnitPrice: usd(50), MinInvestment: usd(50), ExpectedReturn: 14.0, Risk: RiskHigh,
			Sector: "major", Market: GlobalMarket, Kind: "spot",
		},
	)
}
